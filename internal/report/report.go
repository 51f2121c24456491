// Package report 提供 clc 的输出能力。
// 当前实现支持本地化文本报告和 JSON 格式（含文件导出）。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/flaming999/CodeLineCounter/internal/i18n"
	"github.com/flaming999/CodeLineCounter/internal/model"
)

// rule 是报告的分隔线。
var rule = strings.Repeat("=", 80)

// labeledValue 是报告块里的一行“标签: 值”。
type labeledValue struct {
	label string
	value string
}

// PrintText 按选定语言目录渲染文本报告。
// 先是各语言块（按语言名排序），最后是总计块；
// 占比行只在总行数大于零时出现，统一保留一位小数。
func PrintText(writer io.Writer, result model.ScanResult, catalog i18n.Catalog) error {
	if _, err := fmt.Fprintf(writer, "%s\n%s\n%s\n", rule, catalog.ResultsHeading, rule); err != nil {
		return err
	}

	for _, item := range result.Languages {
		if item.Files == 0 {
			continue
		}
		if _, err := fmt.Fprintf(writer, "\n%s:\n", strings.ToUpper(item.Language)); err != nil {
			return err
		}
		if err := writeBlock(writer, statsItems(catalog, catalog.FileCount, item.Files, item.Lines)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(writer, "\n%s\n%s:\n", rule, catalog.Total); err != nil {
		return err
	}
	return writeBlock(writer, statsItems(catalog, catalog.Files, result.Total.Files, result.Total.LineTally))
}

// statsItems 组装一个统计块的全部标签行。
func statsItems(catalog i18n.Catalog, fileLabel string, files int64, lines model.LineTally) []labeledValue {
	items := []labeledValue{
		{fileLabel, fmt.Sprintf("%d", files)},
		{catalog.TotalLines, fmt.Sprintf("%d", lines.Total)},
		{catalog.CodeLines, fmt.Sprintf("%d", lines.Code)},
		{catalog.CommentLines, fmt.Sprintf("%d", lines.Comment)},
		{catalog.BlankLines, fmt.Sprintf("%d", lines.Blank)},
	}

	if lines.Total > 0 {
		items = append(items,
			labeledValue{catalog.CodeRatio, ratio(lines.Code, lines.Total)},
			labeledValue{catalog.CommentRatio, ratio(lines.Comment, lines.Total)},
			labeledValue{catalog.BlankRatio, ratio(lines.Blank, lines.Total)},
		)
	}
	return items
}

// ratio 计算百分比并保留一位小数。
func ratio(part int64, total int64) string {
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

// writeBlock 输出一个统计块，块内标签按显示宽度对齐。
// 宽度用 go-runewidth 计算，中日文全角标签同样能对齐数值列。
func writeBlock(writer io.Writer, items []labeledValue) error {
	width := 0
	for _, item := range items {
		if w := runewidth.StringWidth(item.label); w > width {
			width = w
		}
	}

	for _, item := range items {
		padding := strings.Repeat(" ", width-runewidth.StringWidth(item.label))
		if _, err := fmt.Fprintf(writer, "  %s:%s %s\n", item.label, padding, item.value); err != nil {
			return err
		}
	}
	return nil
}

// PrintJSON 把扫描结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteJSONFile 将 JSON 结果导出到指定路径。
// 如果目录不存在会自动创建。
func WriteJSONFile(path string, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}
