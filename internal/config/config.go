// Package config loads satcalc settings from YAML or CUE files.
//
// The decoder is chosen by file extension. Keys absent from the file keep
// the values from Default. Operands must fit in int32; out-of-range values
// are rejected rather than clamped, since a config file that asks for an
// unrepresentable operand is a mistake, not an accumulation.
//
// YAML:
//
//	a: 3
//	b: 5
//	database: ./tally.db
//
// CUE (same keys, checked against an embedded schema):
//
//	a: 3
//	b: 2147483647
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// ErrUnsupportedFormat is returned for files that are neither YAML nor CUE.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// ErrOutOfRange is returned when an operand does not fit in int32.
var ErrOutOfRange = errors.New("value out of int32 range")

// Config holds the demo operands and the tally database location.
type Config struct {
	A        int32
	B        int32
	Database string
}

// Default returns the built-in settings: operands 3 and 5, no database.
func Default() Config {
	return Config{A: 3, B: 5}
}

// fileConfig mirrors the on-disk shape. Pointers distinguish absent keys.
type fileConfig struct {
	A        *int64  `yaml:"a" json:"a,omitempty"`
	B        *int64  `yaml:"b" json:"b,omitempty"`
	Database *string `yaml:"database" json:"database,omitempty"`
}

// Load reads the file at path and overlays it on Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		fc, err = decodeYAML(data)
	case ".cue":
		fc, err = decodeCUE(path, data)
	default:
		return Config{}, fmt.Errorf("load config %s: %w: %q", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	cfg, err := fc.apply(Default())
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeYAML(data []byte) (fileConfig, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // reject typos like "databse:"
	if err := dec.Decode(&fc); err != nil {
		// An empty document decodes to io.EOF; treat it as "no overrides".
		if errors.Is(err, io.EOF) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("parse YAML: %w", err)
	}
	return fc, nil
}

func decodeCUE(path string, data []byte) (fileConfig, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fileConfig{}, fmt.Errorf("compile schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return fileConfig{}, fmt.Errorf("parse CUE: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fileConfig{}, fmt.Errorf("validate CUE: %w", err)
	}

	var fc fileConfig
	if err := unified.Decode(&fc); err != nil {
		return fileConfig{}, fmt.Errorf("decode CUE: %w", err)
	}
	return fc, nil
}

func (fc fileConfig) apply(cfg Config) (Config, error) {
	if fc.A != nil {
		a, err := narrow("a", *fc.A)
		if err != nil {
			return Config{}, err
		}
		cfg.A = a
	}
	if fc.B != nil {
		b, err := narrow("b", *fc.B)
		if err != nil {
			return Config{}, err
		}
		cfg.B = b
	}
	if fc.Database != nil {
		cfg.Database = *fc.Database
	}
	return cfg, nil
}

func narrow(key string, v int64) (int32, error) {
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%s: %w: %d", key, ErrOutOfRange, v)
	}
	return int32(v), nil
}
