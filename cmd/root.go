// Package cmd 提供 clc 的命令行入口与子命令编排。
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flaming999/CodeLineCounter/internal/i18n"
	"github.com/flaming999/CodeLineCounter/internal/languages"
	"github.com/flaming999/CodeLineCounter/internal/report"
	"github.com/flaming999/CodeLineCounter/internal/scanner"
)

// rootOptions 存放根命令的可配置参数。
type rootOptions struct {
	excludeDirs []string
	includeExts []string
	locale      string
	format      string
	output      string
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	registry, err := languages.NewRegistry()
	if err != nil {
		return err
	}

	bundle, err := i18n.Load()
	if err != nil {
		return err
	}

	return newRootCmd(version, registry, bundle).Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
// 根命令本身就是统计入口：clc [path]，路径缺省为当前目录。
func newRootCmd(version string, registry *languages.Registry, bundle *i18n.Bundle) *cobra.Command {
	options := &rootOptions{
		locale: "en",
		format: "table",
		output: "output.json",
	}

	rootCmd := &cobra.Command{
		Use:   "clc [path]",
		Short: "按语言统计代码行、注释行与空行",
		Long: "clc 递归扫描目录，按文件后缀识别语言，\n" +
			"统计 total/code/comment/blank 行数并输出本地化报告。",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, args, registry, bundle, options)
		},
	}

	rootCmd.Flags().StringSliceVarP(&options.excludeDirs, "exclude", "e", nil,
		"排除的目录名或 glob，提供后整体替换默认排除集")
	rootCmd.Flags().StringSliceVarP(&options.includeExts, "include", "i", nil,
		"仅统计这些后缀，带不带点均可")
	rootCmd.Flags().StringVar(&options.locale, "lang", options.locale,
		"标签语言: en/chs/cht/ja，也接受 BCP-47 代码")
	rootCmd.Flags().StringVar(&options.format, "format", options.format,
		"输出格式: table 或 json")
	rootCmd.Flags().StringVar(&options.output, "output", options.output,
		"json 导出文件路径，默认 output.json")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(registry))

	return rootCmd
}

// runCount 执行一次完整统计：扫描、告警回显、渲染输出。
// 单文件读取失败只在诊断流提示，不改变退出码。
func runCount(cmd *cobra.Command, args []string, registry *languages.Registry, bundle *i18n.Bundle, options *rootOptions) error {
	format := strings.ToLower(strings.TrimSpace(options.format))
	if format != "table" && format != "json" {
		return errors.New("unsupported format, allowed values: table, json")
	}

	catalog, matched := bundle.Match(options.locale)
	if !matched {
		fmt.Fprintf(cmd.ErrOrStderr(), catalog.UnsupportedWarning+"\n", options.locale)
	}

	targetPath := "."
	if len(args) == 1 {
		targetPath = args[0]
	}

	service := scanner.New(registry, scanner.Options{
		ExcludeDirs: options.excludeDirs,
		IncludeExts: options.includeExts,
	})

	result, err := service.Scan(targetPath)
	if err != nil {
		return err
	}

	for _, item := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %s\n", catalog.ReadFileFailed, item.Path, item.Reason)
	}

	switch format {
	case "table":
		return report.PrintText(cmd.OutOrStdout(), result, catalog)
	default:
		if err := report.PrintJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}

		outputPath := strings.TrimSpace(options.output)
		if outputPath == "" {
			outputPath = "output.json"
		}
		if err := report.WriteJSONFile(outputPath, result); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nJSON exported to %s\n", outputPath)
		return nil
	}
}
