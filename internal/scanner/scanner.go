// Package scanner 提供顺序目录扫描与统计聚合能力。
// 该层负责目录遍历、排除与过滤、文本读取和结果归并，不负责逐行分类细节。
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/flaming999/CodeLineCounter/internal/languages"
	"github.com/flaming999/CodeLineCounter/internal/model"
	"github.com/flaming999/CodeLineCounter/internal/textutil"
)

// defaultExcludeDirs 是未显式指定排除规则时生效的目录名集合，
// 覆盖版本控制元数据、依赖缓存和编辑器配置目录。
var defaultExcludeDirs = []string{".git", "__pycache__", "node_modules", ".vscode", ".idea"}

// DefaultExcludeDirs 返回默认排除目录集合的副本。
func DefaultExcludeDirs() []string {
	return append([]string(nil), defaultExcludeDirs...)
}

// Options 存放一次扫描的可配置参数。
// ExcludeDirs 非空时整体替换默认排除集；IncludeExts 非空时只统计命中的后缀。
type Options struct {
	ExcludeDirs []string
	IncludeExts []string
}

// Scanner 是扫描服务对象。
// 整个扫描过程单线程顺序执行，累计结构只被当前调用独占访问。
type Scanner struct {
	registry *languages.Registry
	excludes []string
	includes map[string]struct{}
}

// New 创建扫描服务，并把后缀过滤参数规范为带点小写形式。
func New(registry *languages.Registry, opts Options) *Scanner {
	excludes := opts.ExcludeDirs
	if len(excludes) == 0 {
		excludes = DefaultExcludeDirs()
	}

	var includes map[string]struct{}
	if len(opts.IncludeExts) > 0 {
		includes = make(map[string]struct{}, len(opts.IncludeExts))
		for _, ext := range opts.IncludeExts {
			if normalized := NormalizeExt(ext); normalized != "" {
				includes[normalized] = struct{}{}
			}
		}
	}

	return &Scanner{
		registry: registry,
		excludes: excludes,
		includes: includes,
	}
}

// NormalizeExt 把用户输入的后缀统一为带点小写形式，"PY" 与 ".py" 等价。
func NormalizeExt(ext string) string {
	normalized := strings.ToLower(strings.TrimSpace(ext))
	if normalized != "" && !strings.HasPrefix(normalized, ".") {
		normalized = "." + normalized
	}
	return normalized
}

// Scan 扫描目录或单文件。
// 根路径无效时立即返回错误；单文件读取或解码失败只记入 Errors，
// 出错文件不进入任何累计值，扫描继续。
func (s *Scanner) Scan(targetPath string) (model.ScanResult, error) {
	var result model.ScanResult

	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return result, errors.New("scan path is empty")
	}

	absoluteTarget, err := filepath.Abs(trimmedPath)
	if err != nil {
		return result, fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(absoluteTarget)
	if err != nil {
		return result, fmt.Errorf("stat path: %w", err)
	}

	result.Root = absoluteTarget
	result.Files = make([]model.FileStats, 0)
	result.Errors = make([]model.ScanError, 0)

	if info.IsDir() {
		if walkErr := s.walkTree(absoluteTarget, &result); walkErr != nil {
			return result, walkErr
		}
	} else {
		s.processFile(absoluteTarget, filepath.Base(absoluteTarget), &result)
	}

	s.buildSummaries(&result)
	return result, nil
}

// walkTree 递归遍历目录树。
// 命中排除规则的目录连同整个子树被剪枝；根目录自身不参与排除判断。
// 根以下的目录读取失败记为 ScanError 并跳过该子树，遍历继续。
func (s *Scanner) walkTree(root string, result *model.ScanResult) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return fmt.Errorf("read root directory: %w", walkErr)
			}
			result.Errors = append(result.Errors, model.ScanError{
				Path:   s.displayPath(root, path),
				Reason: walkErr.Error(),
			})
			return nil
		}

		if entry.IsDir() {
			if path != root && s.isExcluded(entry.Name(), s.displayPath(root, path)) {
				return fs.SkipDir
			}
			return nil
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		s.processFile(path, s.displayPath(root, path), result)
		return nil
	})
}

// processFile 对单个文件执行完整流水线：后缀过滤 → 语言识别 → 读取 →
// 解码 → 逐行分类。任何一步失败或未命中都让该文件整体退出，
// 不会出现只累计了一部分字段的中间状态。
func (s *Scanner) processFile(absolutePath string, displayPath string, result *model.ScanResult) {
	if s.includes != nil {
		if _, ok := s.includes[strings.ToLower(filepath.Ext(absolutePath))]; !ok {
			return
		}
	}

	grammar, ok := s.registry.GrammarForFile(absolutePath)
	if !ok {
		return
	}

	data, readErr := os.ReadFile(absolutePath)
	if readErr != nil {
		result.Errors = append(result.Errors, model.ScanError{
			Path:   displayPath,
			Reason: readErr.Error(),
		})
		return
	}

	if textutil.DetectBinary(data) {
		result.Errors = append(result.Errors, model.ScanError{
			Path:   displayPath,
			Reason: "binary content",
		})
		return
	}

	decoded, decodeErr := textutil.Decode(data)
	if decodeErr != nil {
		result.Errors = append(result.Errors, model.ScanError{
			Path:   displayPath,
			Reason: decodeErr.Error(),
		})
		return
	}

	result.Files = append(result.Files, model.FileStats{
		Path:     displayPath,
		Language: grammar.Name,
		Lines:    languages.Classify(grammar, textutil.SplitLines(decoded.Text)),
	})
}

// isExcluded 判断目录是否命中排除规则。
// 规则按 doublestar glob 同时匹配目录名和相对路径；
// 无法编译为 glob 的规则退化为字面量比较，普通目录名两种方式等价。
func (s *Scanner) isExcluded(name string, relativePath string) bool {
	for _, pattern := range s.excludes {
		if matchPattern(pattern, name) || matchPattern(pattern, relativePath) {
			return true
		}
	}
	return false
}

// matchPattern 执行单条规则匹配，非法 glob 按字面量处理。
func matchPattern(pattern string, value string) bool {
	matched, err := doublestar.Match(pattern, value)
	if err != nil {
		return pattern == value
	}
	return matched
}

// displayPath 计算相对扫描根目录的斜杠路径，用于展示和排序。
func (s *Scanner) displayPath(root string, path string) string {
	relativePath, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(relativePath)
}

// buildSummaries 计算语言级汇总和总计信息。
// 归并只做可交换的整数加法，遍历顺序不影响最终值；
// 明细和汇总统一排序，保证输出确定。
func (s *Scanner) buildSummaries(result *model.ScanResult) {
	sort.Slice(result.Files, func(i int, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	sort.Slice(result.Errors, func(i int, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})

	byLanguage := make(map[string]*model.LanguageStats)
	result.Total = model.TotalStats{}

	for _, item := range result.Files {
		result.Total.AddFile(item.Lines)

		summary, ok := byLanguage[item.Language]
		if !ok {
			summary = &model.LanguageStats{
				Language:   item.Language,
				Extensions: s.registry.ExtensionsForLanguage(item.Language),
			}
			byLanguage[item.Language] = summary
		}

		summary.AddFile(item.Lines)
	}

	result.Languages = make([]model.LanguageStats, 0, len(byLanguage))
	for _, item := range byLanguage {
		result.Languages = append(result.Languages, *item)
	}

	sort.Slice(result.Languages, func(i int, j int) bool {
		return result.Languages[i].Language < result.Languages[j].Language
	})
}
