package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the tuning file location before home expansion
const DefaultPath = "~/.config/wishtree/tuning.toml"

// ResolvePath expands a leading ~ and falls back to DefaultPath when path is empty
func ResolvePath(path string) (string, error) {
	if path == "" {
		path = DefaultPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return filepath.Clean(expanded), nil
}

// Load reads the tuning file at path
// A missing file yields defaults with no error
// Unknown keys are logged and ignored; a malformed file yields defaults and ErrInvalid
func Load(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a tuning document over the defaults
func Parse(data []byte) (Tuning, error) {
	t := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	err := dec.Decode(&t)

	var missing *toml.StrictMissingError
	if errors.As(err, &missing) {
		log.Printf("[config] ignoring unknown keys: %s", missing.String())
		t = Default()
		err = toml.Unmarshal(data, &t)
	}
	if err != nil {
		return Default(), fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	t.Normalize()
	return t, nil
}

// Save writes t to path, creating parent directories
func Save(path string, t Tuning) error {
	data, err := toml.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode tuning: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
