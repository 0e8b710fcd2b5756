package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "soltest.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestLoadTestConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[compiler]
command = ["solc", "--test-diagnostics"]
source-prefix = "pragma solidity >=0.0;\n"

[tests]
dir = "test/syntax"
extension = ".sol"
`)

	cfg, err := loadTestConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Compiler.Command) != 2 || cfg.Compiler.Command[0] != "solc" {
		t.Errorf("command = %v", cfg.Compiler.Command)
	}
	if cfg.Compiler.SourcePrefix != "pragma solidity >=0.0;\n" {
		t.Errorf("source-prefix = %q", cfg.Compiler.SourcePrefix)
	}
	if cfg.Tests.Dir != "test/syntax" || cfg.Tests.Extension != ".sol" {
		t.Errorf("tests = %+v", cfg.Tests)
	}
}

func TestLoadTestConfig_EmptyCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[compiler]\ncommand = []\n")

	if _, err := loadTestConfig(path); err == nil {
		t.Fatal("expected an error for an explicitly empty command")
	}
}

func TestFindSoltestToml_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[tests]\ndir = \"test\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create nested dirs: %v", err)
	}

	path, found, err := findSoltestToml(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("manifest not found from nested directory")
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %s, want it in %s", path, root)
	}
}

func TestFindSoltestToml_Missing(t *testing.T) {
	_, found, err := findSoltestToml(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("unexpected manifest hit in empty directory")
	}
}
