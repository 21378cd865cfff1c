package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/abdidvp/dqscore/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up inside a dataset directory.
const FileName = ".dqscore.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .dqscore.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the config at path. A directory is searched for .dqscore.yaml;
// any other path is read as the config file itself. A missing file yields
// DefaultConfig.
func (l *YAMLLoader) Load(path string) (domain.QualityConfig, error) {
	file := Resolve(path)
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.QualityConfig{}, err
	}

	// Unknown keys are rejected so a misspelled constraint parameter is
	// not silently dropped.
	var cfg domain.QualityConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return domain.QualityConfig{}, fmt.Errorf("parsing %s: %w", filepath.Base(file), err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.QualityConfig{}, fmt.Errorf("invalid %s: %w", filepath.Base(file), err)
	}
	return cfg, nil
}

// Resolve maps a directory to its .dqscore.yaml and leaves file paths alone.
func Resolve(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, FileName)
	}
	return path
}
