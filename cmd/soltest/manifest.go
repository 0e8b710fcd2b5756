package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// testManifest is an optional soltest.toml discovered by walking up from the
// start directory. Flags always win over manifest values.
type testManifest struct {
	Path   string
	Root   string
	Config testConfig
}

type testConfig struct {
	Compiler compilerConfig `toml:"compiler"`
	Tests    testsConfig    `toml:"tests"`
}

type compilerConfig struct {
	Command      []string `toml:"command"`
	SourcePrefix string   `toml:"source-prefix"`
}

type testsConfig struct {
	Dir       string `toml:"dir"`
	Extension string `toml:"extension"`
}

func findSoltestToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "soltest.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadTestManifest(startDir string) (*testManifest, bool, error) {
	manifestPath, ok, err := findSoltestToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadTestConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &testManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadTestConfig(path string) (testConfig, error) {
	var cfg testConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return testConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("compiler", "command") && len(cfg.Compiler.Command) == 0 {
		return testConfig{}, fmt.Errorf("%s: [compiler].command must not be empty", path)
	}
	return cfg, nil
}
