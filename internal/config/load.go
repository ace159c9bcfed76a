package config

import (
	"fmt"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file. Keys missing from the file keep their DefaultConfig values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve returns a local path for src. Local files are returned as-is; anything
// else (http, s3, git::...) is downloaded into dir with go-getter.
func Resolve(src, dir string) (string, error) {
	if _, err := os.Stat(src); err == nil {
		return src, nil
	}

	dst := filepath.Join(dir, "config.yaml")
	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve config: %w", err)
	}
	client := &getter.Client{
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return "", fmt.Errorf("fetch config %s: %w", src, err)
	}
	return dst, nil
}
