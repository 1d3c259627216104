// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package config loads settings for the ejtree command-line tool.
//
// Settings are read from a YAML file if the path ends in ".yaml" or ".yml",
// and otherwise from a HuJSON file (JSON with comments and trailing commas).
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// Settings are the options of the command-line tool.
type Settings struct {
	// MaxDepth limits the nesting depth of the input; 0 means no limit.
	MaxDepth int `json:"maxDepth" yaml:"maxDepth"`

	// Encoding is the input encoding: "utf8" (default), "utf32be", or
	// "utf32le".
	Encoding string `json:"encoding" yaml:"encoding"`

	// Eval selects whether trees are evaluated and printed as JSON.
	Eval bool `json:"eval" yaml:"eval"`

	// Tokens selects whether tokens are printed instead of trees.
	Tokens bool `json:"tokens" yaml:"tokens"`

	// Indent is the indentation of rendered output. If nil, the tool indents
	// only when writing to a terminal.
	Indent *string `json:"indent" yaml:"indent"`
}

// Encodings accepted in the Encoding setting.
var validEncodings = map[string]bool{"": true, "utf8": true, "utf32be": true, "utf32le": true}

// Load reads settings from the file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseHuJSON(data)
	}
}

// ParseHuJSON parses settings from HuJSON text.
func ParseHuJSON(data []byte) (*Settings, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(std))
	dec.DisallowUnknownFields()
	var s Settings
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	return s.validate()
}

// ParseYAML parses settings from YAML text.
func ParseYAML(data []byte) (*Settings, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Settings
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	return s.validate()
}

func (s *Settings) validate() (*Settings, error) {
	if s.MaxDepth < 0 {
		return nil, fmt.Errorf("config: invalid maxDepth %d", s.MaxDepth)
	} else if !validEncodings[s.Encoding] {
		return nil, fmt.Errorf("config: unknown encoding %q", s.Encoding)
	} else if s.Eval && s.Tokens {
		return nil, errors.New("config: eval and tokens are mutually exclusive")
	}
	return s, nil
}
