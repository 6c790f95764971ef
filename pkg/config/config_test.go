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
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_yaml",
			file: "restage.yaml",
			config: `
base_dir: /data/base/
in_ext: .INDD
out_ext: idml
ignore:
  - "**/.git/**"
move:
  prefer_rename: true
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/data/base", cfg.BaseDir, "base dir should be cleaned")
				assert.Equal(t, "INDD", cfg.InExt, "in ext should lose its dot and keep its case")
				assert.Equal(t, "idml", cfg.OutExt, "out ext should match")
				assert.Equal(t, []string{"**/.git/**"}, cfg.Ignore, "ignore should match")
				assert.True(t, cfg.Move.PreferRename, "prefer rename should be set")
				assert.Equal(t, DefaultRemoveAttempts, cfg.Move.RemoveAttempts, "remove attempts should default")
				assert.Equal(t, DefaultScratchDir, cfg.ScratchDir, "scratch dir should default")
				assert.Equal(t, DefaultManifestFile, cfg.ManifestFile, "manifest file should default")
			},
		},
		{
			name:   "empty_yaml_uses_defaults",
			file:   "restage.yml",
			config: ``,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "valid_hcl",
			file: "restage.hcl",
			config: `
base_dir = "/data/base"
scratch_dir = "staging"
in_ext = "txt"
out_ext = "md"
ignore = ["*.tmp"]

move {
  remove_attempts = 5
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/data/base", cfg.BaseDir)
				assert.Equal(t, "staging", cfg.ScratchDir)
				assert.Equal(t, "txt", cfg.InExt)
				assert.Equal(t, "md", cfg.OutExt)
				assert.Equal(t, []string{"*.tmp"}, cfg.Ignore)
				assert.False(t, cfg.Move.PreferRename)
				assert.Equal(t, 5, cfg.Move.RemoveAttempts)
			},
		},
		{
			name:   "valid_json",
			file:   "restage.json",
			config: `{"manifest_file": "list.txt", "out_ext": "PDF"}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "list.txt", cfg.ManifestFile)
				assert.Equal(t, "pdf", cfg.OutExt)
				assert.Equal(t, DefaultInExt, cfg.InExt)
			},
		},
		{
			name:        "unknown_yaml_field",
			file:        "restage.yaml",
			config:      "destination: /tmp\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			file:        "restage.json",
			config:      `{"provider": {}}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "invalid_hcl",
			file:        "restage.hcl",
			config:      `base_dir = `,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "scratch_dir_with_separator",
			file:        "restage.yaml",
			config:      "scratch_dir: a/b\n",
			wantErr:     true,
			errContains: "scratch_dir must be a plain name",
		},
		{
			name:        "extension_with_separator",
			file:        "restage.yaml",
			config:      "in_ext: a/b\n",
			wantErr:     true,
			errContains: "in_ext",
		},
		{
			name:        "same_in_and_out_extension",
			file:        "restage.yaml",
			config:      "in_ext: idml\nout_ext: .IDML\n",
			wantErr:     true,
			errContains: "in_ext and out_ext",
		},
		{
			name:        "unsupported_extension",
			file:        "restage.toml",
			config:      "",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, tt.file, []byte(tt.config), 0o644), "writing config file")

			cfg, err := Load(ctx, fs, tt.file)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	_, err := Load(ctx, afero.NewMemMapFs(), ".restage.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestNormalizeExt(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "txt", want: "txt"},
		{in: ".TXT", want: "TXT"},
		{in: "  .Indd ", want: "Indd"},
		{in: "tar.gz", want: "tar.gz"},
		{in: "", wantErr: true},
		{in: ".", wantErr: true},
		{in: "a\\b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeExt(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidExtension), "error should be ErrInvalidExtension")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "<default>/{scraped_file.txt,to_convert} .indd -> .idml", cfg.String())

	cfg.BaseDir = "/base"
	assert.Equal(t, "/base/{scraped_file.txt,to_convert} .indd -> .idml", cfg.String())
}
