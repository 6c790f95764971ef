// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultScratchDir     = "to_convert"
	DefaultManifestFile   = "scraped_file.txt"
	DefaultInExt          = "indd"
	DefaultOutExt         = "idml"
	DefaultRemoveAttempts = 3
)

// ErrInvalidExtension is returned for extensions that cannot name a file suffix.
var ErrInvalidExtension = errors.Base("invalid extension")

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🚚 MoveArgs tunes the tree mirroring operation
type MoveArgs struct {
	PreferRename   bool `json:"prefer_rename,omitempty" yaml:"prefer_rename,omitempty"`     // Try an atomic rename before copy+delete
	RemoveAttempts int  `json:"remove_attempts,omitempty" yaml:"remove_attempts,omitempty"` // Attempts at deleting a moved source
}

// 📚 Config represents the complete configuration
type Config struct {
	BaseDir      string    `json:"base_dir,omitempty" yaml:"base_dir,omitempty"`
	ScratchDir   string    `json:"scratch_dir,omitempty" yaml:"scratch_dir,omitempty"`
	ManifestFile string    `json:"manifest_file,omitempty" yaml:"manifest_file,omitempty"`
	InExt        string    `json:"in_ext,omitempty" yaml:"in_ext,omitempty"`
	OutExt       string    `json:"out_ext,omitempty" yaml:"out_ext,omitempty"`
	Ignore       []string  `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	Move         *MoveArgs `json:"move,omitempty" yaml:"move,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	// the zero config always validates
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, fs afero.Fs, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.ScratchDir == "" {
		cfg.ScratchDir = DefaultScratchDir
	}
	if cfg.ManifestFile == "" {
		cfg.ManifestFile = DefaultManifestFile
	}
	if cfg.InExt == "" {
		cfg.InExt = DefaultInExt
	}
	if cfg.OutExt == "" {
		cfg.OutExt = DefaultOutExt
	}
	if cfg.Move == nil {
		cfg.Move = &MoveArgs{}
	}
	if cfg.Move.RemoveAttempts <= 0 {
		cfg.Move.RemoveAttempts = DefaultRemoveAttempts
	}

	for name, v := range map[string]string{"scratch_dir": cfg.ScratchDir, "manifest_file": cfg.ManifestFile} {
		if strings.ContainsAny(v, `/\`) || v == "." || v == ".." {
			return errors.Errorf("%s must be a plain name inside base_dir, got %q", name, v)
		}
	}

	var err error
	if cfg.InExt, err = NormalizeExt(cfg.InExt); err != nil {
		return errors.Errorf("in_ext: %w", err)
	}
	if cfg.OutExt, err = NormalizeExt(cfg.OutExt); err != nil {
		return errors.Errorf("out_ext: %w", err)
	}
	if strings.EqualFold(cfg.InExt, cfg.OutExt) {
		// restore would treat every original as an existing destination
		return errors.Errorf("%w: in_ext and out_ext are both %q", ErrInvalidExtension, cfg.InExt)
	}

	if cfg.BaseDir != "" {
		cfg.BaseDir = filepath.Clean(cfg.BaseDir)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	base := cfg.BaseDir
	if base == "" {
		base = "<default>"
	}
	return fmt.Sprintf("%s/{%s,%s} .%s -> .%s", base, cfg.ManifestFile, cfg.ScratchDir, cfg.InExt, cfg.OutExt)
}

// NormalizeExt trims whitespace and one leading dot from ext. The case is
// kept since staged and converted names are built from it verbatim.
func NormalizeExt(ext string) (string, error) {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return "", errors.Errorf("%w: empty", ErrInvalidExtension)
	}
	if strings.ContainsAny(ext, `/\`) {
		return "", errors.Errorf("%w: %q contains a path separator", ErrInvalidExtension, ext)
	}
	return ext, nil
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
