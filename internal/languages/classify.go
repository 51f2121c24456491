package languages

import (
	"strings"

	"github.com/flaming999/CodeLineCounter/internal/model"
)

// Classify 对一个文件的全部行做逐行分类，返回行级统计。
//
// 判定按固定优先级进行：空行 → 块注释 → 行注释 → 代码。
// 整个调用只维护一个跨行状态：当前是否处于未闭合的块注释中；
// 每次调用状态都从头开始，同一行序列重复分类结果恒等。
//
// 已知限制：标记检测是纯子串包含，不感知字符串字面量，
// 例如 s = "/*" 这样的代码行会被当作块注释开始。
// 这是固定的统计口径，不做更聪明的词法解析。
func Classify(g *Grammar, lines []string) model.LineTally {
	var tally model.LineTally
	inBlockComment := false

	for _, line := range lines {
		tally.Total++
		stripped := strings.TrimSpace(line)

		if stripped == "" {
			tally.Blank++
			continue
		}

		if g.HasBlockPair() {
			containsStart := strings.Contains(stripped, g.BlockStart)
			containsEnd := strings.Contains(stripped, g.BlockEnd)

			// 起止标记同时出现按单行块注释处理，跨行状态不变。
			// 不校验起止先后顺序，"*/ x /*" 同样归入注释。
			if containsStart && containsEnd {
				tally.Comment++
				continue
			}
			if containsStart && !inBlockComment {
				inBlockComment = true
				tally.Comment++
				continue
			}
			if containsEnd && inBlockComment {
				inBlockComment = false
				tally.Comment++
				continue
			}
			if inBlockComment {
				tally.Comment++
				continue
			}
		}

		if g.LineComment != "" && strings.HasPrefix(stripped, g.LineComment) {
			tally.Comment++
			continue
		}

		tally.Code++
	}

	return tally
}
