package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/flaming999/CodeLineCounter/internal/languages"
)

// newLanguageCmd 创建 language 子命令。
// 命令用于展示支持的语言、文件后缀和注释标记。
func newLanguageCmd(registry *languages.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "展示支持的语言及注释语法",
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "LANGUAGE\tEXTENSIONS\tLINE COMMENT\tBLOCK COMMENT"); err != nil {
				return err
			}

			for _, grammar := range registry.Grammars() {
				lineMarker := grammar.LineComment
				if lineMarker == "" {
					lineMarker = "-"
				}

				blockMarkers := "-"
				if grammar.HasBlockPair() {
					blockMarkers = grammar.BlockStart + " " + grammar.BlockEnd
				}

				if _, err := fmt.Fprintf(
					writer,
					"%s\t%s\t%s\t%s\n",
					grammar.Name,
					strings.Join(grammar.Extensions, ", "),
					lineMarker,
					blockMarkers,
				); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}
