package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flaming999/CodeLineCounter/internal/i18n"
	"github.com/flaming999/CodeLineCounter/internal/languages"
)

// newTestRootCmd 构建根命令并接好输出缓冲。
func newTestRootCmd(t *testing.T) (*bytes.Buffer, *bytes.Buffer, func(args ...string) error) {
	t.Helper()

	registry, err := languages.NewRegistry()
	if err != nil {
		t.Fatalf("build registry failed: %v", err)
	}

	bundle, err := i18n.Load()
	if err != nil {
		t.Fatalf("load locale bundle failed: %v", err)
	}

	var out bytes.Buffer
	var errOut bytes.Buffer

	run := func(args ...string) error {
		rootCmd := newRootCmd("test", registry, bundle)
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&errOut)
		rootCmd.SetArgs(args)
		return rootCmd.Execute()
	}
	return &out, &errOut, run
}

// writeTestFile 在临时目录落地一个测试文件。
func writeTestFile(t *testing.T, path string, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir test dir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test file failed: %v", err)
	}
}

// TestRootCommandTableOutput 验证默认 table 输出走完整流水线。
func TestRootCommandTableOutput(t *testing.T) {
	tempDir := t.TempDir()
	writeTestFile(t, filepath.Join(tempDir, "app.py"), "x = 1\n# c\n\n")

	out, errOut, run := newTestRootCmd(t)
	if err := run(tempDir); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{"Code Line Statistics Results", "PYTHON:", "Total:"} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q:\n%s", want, output)
		}
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", errOut.String())
	}
}

// TestRootCommandLocaleFlag 验证 --lang 只改标签文本。
func TestRootCommandLocaleFlag(t *testing.T) {
	tempDir := t.TempDir()
	writeTestFile(t, filepath.Join(tempDir, "app.py"), "x = 1\n")

	out, _, run := newTestRootCmd(t)
	if err := run(tempDir, "--lang", "chs"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if !strings.Contains(out.String(), "代码行数统计结果") {
		t.Fatalf("expected chs labels:\n%s", out.String())
	}
}

// TestRootCommandUnsupportedLocaleWarns 验证未知语言回退英文并在诊断流提示。
func TestRootCommandUnsupportedLocaleWarns(t *testing.T) {
	tempDir := t.TempDir()
	writeTestFile(t, filepath.Join(tempDir, "app.py"), "x = 1\n")

	out, errOut, run := newTestRootCmd(t)
	if err := run(tempDir, "--lang", "fr"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if !strings.Contains(errOut.String(), "'fr' not supported") {
		t.Fatalf("expected locale warning, got: %s", errOut.String())
	}
	if !strings.Contains(out.String(), "Code Line Statistics Results") {
		t.Fatalf("expected english fallback:\n%s", out.String())
	}
}

// TestRootCommandIncludeExclude 验证 include/exclude 旗标透传到扫描器。
func TestRootCommandIncludeExclude(t *testing.T) {
	tempDir := t.TempDir()
	writeTestFile(t, filepath.Join(tempDir, "app.py"), "x = 1\n")
	writeTestFile(t, filepath.Join(tempDir, "app.java"), "class A {}\n")
	writeTestFile(t, filepath.Join(tempDir, "gen", "skip.py"), "y = 2\n")

	out, _, run := newTestRootCmd(t)
	if err := run(tempDir, "--include", "py", "--exclude", "gen"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "PYTHON:") {
		t.Fatalf("expected python block:\n%s", output)
	}
	if strings.Contains(output, "JAVA:") {
		t.Fatalf("java should be filtered out:\n%s", output)
	}
}

// TestRootCommandRejectsBadFormat 验证非法 format 立即报错。
func TestRootCommandRejectsBadFormat(t *testing.T) {
	_, _, run := newTestRootCmd(t)

	err := run(t.TempDir(), "--format", "xml")
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("expected format error, got: %v", err)
	}
}

// TestRootCommandJSONExport 验证 json 格式同时落地导出文件。
func TestRootCommandJSONExport(t *testing.T) {
	tempDir := t.TempDir()
	writeTestFile(t, filepath.Join(tempDir, "app.py"), "x = 1\n")
	outputPath := filepath.Join(t.TempDir(), "export", "result.json")

	out, _, run := newTestRootCmd(t)
	if err := run(tempDir, "--format", "json", "--output", outputPath); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if _, err := os.Stat(outputPath); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
	if !strings.Contains(out.String(), "JSON exported to") {
		t.Fatalf("expected export notice:\n%s", out.String())
	}
}

// TestRootCommandInvalidRoot 验证无效根路径返回错误。
func TestRootCommandInvalidRoot(t *testing.T) {
	_, _, run := newTestRootCmd(t)

	if err := run(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing root")
	}
}

// TestLanguageSubcommand 验证 language 子命令列出语法表。
func TestLanguageSubcommand(t *testing.T) {
	out, _, run := newTestRootCmd(t)

	if err := run("language"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{"LANGUAGE", "python", "html", "<!-- -->"} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q:\n%s", want, output)
		}
	}
}

// TestVersionSubcommand 验证 version 子命令输出注入的版本号。
func TestVersionSubcommand(t *testing.T) {
	out, _, run := newTestRootCmd(t)

	if err := run("version"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(out.String(), "clc version test") {
		t.Fatalf("unexpected version output: %s", out.String())
	}
}
