package textutil

import (
	"bytes"
	"reflect"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// TestDetectBinary 验证二进制探测：NUL 直接判定，控制字符超比例判定。
func TestDetectBinary(t *testing.T) {
	if DetectBinary([]byte("plain text\nwith lines\n")) {
		t.Fatalf("plain text misdetected as binary")
	}
	if DetectBinary(nil) {
		t.Fatalf("empty content misdetected as binary")
	}
	if !DetectBinary([]byte{'a', 0x00, 'b'}) {
		t.Fatalf("NUL byte not detected")
	}
	if !DetectBinary(bytes.Repeat([]byte{0x01}, 100)) {
		t.Fatalf("control-heavy content not detected")
	}
}

// TestDecodeUTF8 验证合法 utf-8 原样通过。
func TestDecodeUTF8(t *testing.T) {
	decoded, err := Decode([]byte("x = 1 # 注释"))
	if err != nil {
		t.Fatalf("decode utf-8 failed: %v", err)
	}
	if decoded.Encoding != "utf-8" || decoded.Text != "x = 1 # 注释" {
		t.Fatalf("unexpected decode result: %+v", decoded)
	}
}

// TestDecodeGBKFallback 验证非 utf-8 的中文内容走 gb18030 回退解码。
func TestDecodeGBKFallback(t *testing.T) {
	raw, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("# 中文注释\nx = 1\n"))
	if err != nil {
		t.Fatalf("build gbk fixture failed: %v", err)
	}

	decoded, decodeErr := Decode(raw)
	if decodeErr != nil {
		t.Fatalf("decode gbk content failed: %v", decodeErr)
	}
	if decoded.Text != "# 中文注释\nx = 1\n" {
		t.Fatalf("unexpected decoded text: %q", decoded.Text)
	}
	if decoded.Encoding != "gb18030" && decoded.Encoding != "gbk" {
		t.Fatalf("unexpected encoding label: %s", decoded.Encoding)
	}
}

// TestDecodeFailure 验证所有编码都失败时返回错误。
func TestDecodeFailure(t *testing.T) {
	if _, err := Decode([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Fatalf("expected decode error for invalid bytes")
	}
}

// TestSplitLines 验证行切分口径：换行风格归一、末尾换行不产生空行。
func TestSplitLines(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "no trailing newline", input: "a\nb", want: []string{"a", "b"}},
		{name: "trailing newline", input: "a\nb\n", want: []string{"a", "b"}},
		{name: "crlf", input: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "bare cr", input: "a\rb", want: []string{"a", "b"}},
		{name: "blank middle line", input: "a\n\nb\n", want: []string{"a", "", "b"}},
		{name: "only newline", input: "\n", want: []string{""}},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			got := SplitLines(testCase.input)
			if !reflect.DeepEqual(got, testCase.want) {
				t.Fatalf("SplitLines(%q) = %#v, want %#v", testCase.input, got, testCase.want)
			}
		})
	}
}
