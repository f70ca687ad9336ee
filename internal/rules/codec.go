package rules

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format selects a rule file encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "json"
	}
}

// ParseFormat maps a name or file extension to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return FormatJSON, fmt.Errorf("unknown rule file format %q", name)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// ruleRecord is the on-disk shape of a rule.
type ruleRecord struct {
	Tint              Color    `json:"tint" yaml:"tint" toml:"tint"`
	OverrideImage     string   `json:"overrideImage,omitempty" yaml:"overrideImage,omitempty" toml:"overrideImage,omitempty"`
	ApplyToChildren   bool     `json:"applyToChildren" yaml:"applyToChildren" toml:"applyToChildren"`
	ApplyToNonFolders bool     `json:"applyToNonFolders" yaml:"applyToNonFolders" toml:"applyToNonFolders"`
	NonFolderAlpha    float32  `json:"nonFolderAlpha" yaml:"nonFolderAlpha" toml:"nonFolderAlpha"`
	Patterns          []string `json:"patterns" yaml:"patterns" toml:"patterns"`
}

type ruleFile struct {
	Rules []ruleRecord `json:"rules" yaml:"rules" toml:"rule"`
}

// Encode writes rs in the given format.
func Encode(w io.Writer, rs *RuleSet, f Format) error {
	var file ruleFile
	for _, r := range rs.Rules() {
		file.Rules = append(file.Rules, ruleRecord{
			Tint:              r.Tint,
			OverrideImage:     r.OverrideImage,
			ApplyToChildren:   r.ApplyToChildren,
			ApplyToNonFolders: r.ApplyToNonFolders,
			NonFolderAlpha:    r.NonFolderAlpha,
			Patterns:          r.Patterns,
		})
	}

	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(file); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(file)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(file)
	}
}

// Decode reads a rule set in the given format. Rules without patterns get a
// single empty pattern.
func Decode(r io.Reader, f Format) (*RuleSet, error) {
	var file ruleFile
	var err error
	switch f {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&file)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		err = toml.NewDecoder(r).Decode(&file)
	default:
		err = json.NewDecoder(r).Decode(&file)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s rules: %w", f, err)
	}

	rs := NewRuleSet()
	for _, rec := range file.Rules {
		rs.Add(&Rule{
			Tint:              rec.Tint,
			OverrideImage:     rec.OverrideImage,
			ApplyToChildren:   rec.ApplyToChildren,
			ApplyToNonFolders: rec.ApplyToNonFolders,
			NonFolderAlpha:    rec.NonFolderAlpha,
			Patterns:          rec.Patterns,
		})
	}
	return rs, nil
}
