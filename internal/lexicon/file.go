package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the on-disk YAML shape of a lexicon.
type file struct {
	Phrases        []Entry  `yaml:"phrases"`
	StopWords      []string `yaml:"stopwords"`
	QualitySources []string `yaml:"quality_sources"`
}

// LoadFile reads a lexicon from a YAML file.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	return New(f.Phrases, f.StopWords, f.QualitySources), nil
}
