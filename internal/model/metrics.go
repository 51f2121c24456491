// Package model 定义 clc 的核心数据模型。
// 这些结构会被扫描器、输出层和命令层共同使用。
package model

// LineTally 表示一组行级统计值。
//
// 约束：每一行只会被归入 code/comment/blank 三类中的一类，
// 因此恒有 Total == Code + Comment + Blank。
type LineTally struct {
	Total   int64 `json:"total"`
	Code    int64 `json:"code"`
	Comment int64 `json:"comment"`
	Blank   int64 `json:"blank"`
}

// Add 将另一个统计结果叠加到当前对象。
func (t *LineTally) Add(other LineTally) {
	t.Total += other.Total
	t.Code += other.Code
	t.Comment += other.Comment
	t.Blank += other.Blank
}

// FileStats 表示单文件统计结果。
// Path 为相对扫描根目录的斜杠路径。
type FileStats struct {
	Path     string    `json:"path"`
	Language string    `json:"language"`
	Lines    LineTally `json:"lines"`
}

// LanguageStats 表示某个语言的聚合结果。
// 只由扫描器在归并阶段更新，每个成功分类的文件恰好贡献一次。
type LanguageStats struct {
	Language   string    `json:"language"`
	Extensions []string  `json:"extensions"`
	Files      int64     `json:"files"`
	Lines      LineTally `json:"lines"`
}

// AddFile 累加一个文件的统计值到该语言。
func (s *LanguageStats) AddFile(lines LineTally) {
	s.Files++
	s.Lines.Add(lines)
}

// ScanError 记录单文件读取或解码失败信息。
// 设计为“失败不阻断全量扫描”，出错文件不进入任何累计值。
type ScanError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// TotalStats 表示项目级总计信息。
// 在 LineTally 基础上额外增加 Files 字段，与各语言的累计同步更新。
type TotalStats struct {
	Files int64 `json:"files"`
	LineTally
}

// AddFile 累加一个文件的统计值到项目总计中。
func (t *TotalStats) AddFile(lines LineTally) {
	t.Files++
	t.LineTally.Add(lines)
}

// ScanResult 是一次扫描的完整输出模型。
// 包含文件级明细、语言级汇总、全局总计和失败清单。
type ScanResult struct {
	Root      string          `json:"root"`
	Files     []FileStats     `json:"files"`
	Languages []LanguageStats `json:"languages"`
	Total     TotalStats      `json:"total"`
	Errors    []ScanError     `json:"errors"`
}
