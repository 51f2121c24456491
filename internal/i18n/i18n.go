// Package i18n 维护报告标签的多语言目录。
// 目录在启动时从内置 yaml 装载为只读值，由调用方显式传给输出层；
// 语言选择只影响标签文本，统计值与语言无关。
package i18n

import (
	"bytes"
	"embed"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFiles embed.FS

// localeCodes 是内置目录的代码，与 localeTags 一一对应。
var localeCodes = []string{"en", "chs", "cht", "ja"}

// localeTags 用于 BCP-47 代码到内置目录的匹配。
var localeTags = []language.Tag{
	language.English,
	language.SimplifiedChinese,
	language.TraditionalChinese,
	language.Japanese,
}

// Catalog 是一种语言的完整标签集合。
// 字段与 locales/*.yaml 的键一一对应，装载时校验全部非空。
type Catalog struct {
	Code               string `yaml:"-"`
	Title              string `yaml:"title"`
	ResultsHeading     string `yaml:"results_heading"`
	FileCount          string `yaml:"file_count"`
	Files              string `yaml:"files"`
	TotalLines         string `yaml:"total_lines"`
	CodeLines          string `yaml:"code_lines"`
	CommentLines       string `yaml:"comment_lines"`
	BlankLines         string `yaml:"blank_lines"`
	CodeRatio          string `yaml:"code_ratio"`
	CommentRatio       string `yaml:"comment_ratio"`
	BlankRatio         string `yaml:"blank_ratio"`
	ReadFileFailed     string `yaml:"read_file_failed"`
	Total              string `yaml:"total"`
	UnsupportedWarning string `yaml:"unsupported_warning"`
}

// Bundle 持有全部内置目录和 BCP-47 匹配器。
type Bundle struct {
	catalogs map[string]Catalog
	matcher  language.Matcher
}

// Load 装载并校验全部内置语言目录。
func Load() (*Bundle, error) {
	catalogs := make(map[string]Catalog, len(localeCodes))

	for _, code := range localeCodes {
		data, err := localeFiles.ReadFile("locales/" + code + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", code, err)
		}

		var catalog Catalog
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&catalog); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", code, err)
		}
		if err := validateCatalog(code, catalog); err != nil {
			return nil, err
		}

		catalog.Code = code
		catalogs[code] = catalog
	}

	return &Bundle{
		catalogs: catalogs,
		matcher:  language.NewMatcher(localeTags),
	}, nil
}

// validateCatalog 要求目录的每个标签字段都有值，缺键在测试期即失败。
func validateCatalog(code string, catalog Catalog) error {
	value := reflect.ValueOf(catalog)
	structType := value.Type()

	for i := 0; i < structType.NumField(); i++ {
		if structType.Field(i).Tag.Get("yaml") == "-" {
			continue
		}
		if value.Field(i).String() == "" {
			return fmt.Errorf("locale %s: label %s is empty", code, structType.Field(i).Name)
		}
	}
	return nil
}

// Match 按语言代码查找目录。
// 先按内置代码（en/chs/cht/ja）精确匹配，再把输入当作 BCP-47 代码
// 做近似匹配（zh-Hans→chs、en-US→en 等）。两者都未命中时
// 返回英文目录和 false，由调用方决定是否提示。
func (b *Bundle) Match(code string) (Catalog, bool) {
	normalized := strings.ToLower(strings.TrimSpace(code))

	if catalog, ok := b.catalogs[normalized]; ok {
		return catalog, true
	}

	if tag, err := language.Parse(normalized); err == nil {
		if _, index, confidence := b.matcher.Match(tag); confidence >= language.High {
			return b.catalogs[localeCodes[index]], true
		}
	}

	return b.catalogs["en"], false
}
