// Package textutil 提供文本解码与行切分能力。
// 扫描器用它把磁盘字节内容变成可分类的行序列；
// 无法当作文本处理的文件在这里被识别出来并由调用方跳过。
package textutil

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// binarySampleSize 为二进制探测采样的最大字节数。
const binarySampleSize = 8192

// Decoded 表示一次成功的文本解码。
type Decoded struct {
	Text     string
	Encoding string
}

// DetectBinary 用控制字符占比判断内容是否为二进制。
// 出现 NUL 字节直接判定；其余控制字符占比超过 30% 也判定为二进制。
func DetectBinary(sample []byte) bool {
	if len(sample) > binarySampleSize {
		sample = sample[:binarySampleSize]
	}
	if len(sample) == 0 {
		return false
	}

	ctl := 0
	for _, b := range sample {
		if b == 0 {
			return true
		}
		if b == '\t' || b == '\n' || b == '\r' {
			continue
		}
		if b < 32 || b == 127 {
			ctl++
		}
	}

	return float64(ctl)/float64(len(sample)) > 0.30
}

// Decode 按 utf-8 → gb18030 → gbk 的顺序尝试解码。
// 全部失败时返回错误，调用方应整体跳过该文件。
func Decode(data []byte) (Decoded, error) {
	if utf8.Valid(data) {
		return Decoded{Text: string(data), Encoding: "utf-8"}, nil
	}
	if out, err := simplifiedchinese.GB18030.NewDecoder().Bytes(data); err == nil && utf8.Valid(out) {
		return Decoded{Text: string(out), Encoding: "gb18030"}, nil
	}
	if out, err := simplifiedchinese.GBK.NewDecoder().Bytes(data); err == nil && utf8.Valid(out) {
		return Decoded{Text: string(out), Encoding: "gbk"}, nil
	}
	return Decoded{}, errors.New("unrecognized text encoding (tried utf-8/gb18030/gbk)")
}

// SplitLines 把解码后的文本切成行序列。
// \r\n 与单独的 \r 统一按换行处理；末尾换行符不产生额外空行；
// 空文本没有任何行。
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	norm := strings.ReplaceAll(text, "\r\n", "\n")
	norm = strings.ReplaceAll(norm, "\r", "\n")

	lines := strings.Split(norm, "\n")
	if strings.HasSuffix(norm, "\n") {
		lines = lines[:len(lines)-1]
	}
	return lines
}
