// Package languages 维护语言注释语法表与后缀解析。
// 语法定义是纯数据：每种语言只有行注释标记和块注释标记对两类信息，
// 逐行分类统一由 Classify 完成，不存在按语言定制的解析器。
package languages

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed languages.yaml
var builtinTable []byte

// Grammar 描述一种语言的注释语法。
// 字段在启动时由内置语法表装载，之后只读。
type Grammar struct {
	Name        string   `yaml:"name"`
	Extensions  []string `yaml:"extensions"`
	LineComment string   `yaml:"line_comment"`
	BlockStart  string   `yaml:"block_start"`
	BlockEnd    string   `yaml:"block_end"`
}

// HasBlockPair 报告该语言是否定义了块注释标记对。
func (g *Grammar) HasBlockPair() bool {
	return g.BlockStart != "" && g.BlockEnd != ""
}

// grammarTable 对应 languages.yaml 的文档结构。
type grammarTable struct {
	Languages []Grammar `yaml:"languages"`
}

// Registry 管理语言语法注册与后缀映射。
type Registry struct {
	grammars     []Grammar
	grammarByExt map[string]*Grammar
}

// NewRegistry 解析内置语法表并建立后缀索引。
func NewRegistry() (*Registry, error) {
	var table grammarTable
	decoder := yaml.NewDecoder(bytes.NewReader(builtinTable))
	decoder.KnownFields(true)
	if err := decoder.Decode(&table); err != nil {
		return nil, fmt.Errorf("parse language table: %w", err)
	}
	return newRegistry(table.Languages)
}

// newRegistry 校验语法定义并建立小写后缀索引。
// 同一后缀出现多次时，先注册的语言生效。
func newRegistry(grammars []Grammar) (*Registry, error) {
	registry := &Registry{
		grammars:     grammars,
		grammarByExt: make(map[string]*Grammar),
	}

	for i := range registry.grammars {
		grammar := &registry.grammars[i]
		if err := validateGrammar(grammar); err != nil {
			return nil, err
		}
		for _, ext := range grammar.Extensions {
			key := strings.ToLower(ext)
			if _, exists := registry.grammarByExt[key]; exists {
				continue
			}
			registry.grammarByExt[key] = grammar
		}
	}

	return registry, nil
}

// validateGrammar 校验单条语法定义。
// 块注释标记必须成对出现，且每种语言至少要有一类注释语法。
func validateGrammar(g *Grammar) error {
	if strings.TrimSpace(g.Name) == "" {
		return errors.New("language table: name is empty")
	}
	if len(g.Extensions) == 0 {
		return fmt.Errorf("language %s: no extensions", g.Name)
	}
	for _, ext := range g.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("language %s: extension %q must start with a dot", g.Name, ext)
		}
	}
	if (g.BlockStart == "") != (g.BlockEnd == "") {
		return fmt.Errorf("language %s: block comment markers must be paired", g.Name)
	}
	if g.LineComment == "" && !g.HasBlockPair() {
		return fmt.Errorf("language %s: no comment syntax defined", g.Name)
	}
	return nil
}

// GrammarForExt 根据后缀查找语法，比较不区分大小写。
func (r *Registry) GrammarForExt(ext string) (*Grammar, bool) {
	grammar, ok := r.grammarByExt[strings.ToLower(ext)]
	return grammar, ok
}

// GrammarForFile 根据文件路径的后缀查找语法。
func (r *Registry) GrammarForFile(path string) (*Grammar, bool) {
	return r.GrammarForExt(filepath.Ext(path))
}

// Grammars 返回已注册语言清单，按名称排序，后缀同样排序。
func (r *Registry) Grammars() []Grammar {
	result := append([]Grammar(nil), r.grammars...)
	for i := range result {
		extensions := append([]string(nil), result[i].Extensions...)
		sort.Strings(extensions)
		result[i].Extensions = extensions
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// ExtensionsForLanguage 返回指定语言对应的全部后缀。
func (r *Registry) ExtensionsForLanguage(language string) []string {
	for i := range r.grammars {
		if r.grammars[i].Name == language {
			extensions := append([]string(nil), r.grammars[i].Extensions...)
			sort.Strings(extensions)
			return extensions
		}
	}
	return nil
}
