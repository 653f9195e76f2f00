// Package config holds the options of a topic modeller and reads them
// from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/prem1835/PeTaL/model"
	"github.com/prem1835/PeTaL/text"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config enumerates every recognised option. Unknown keys in a config
// file are rejected.
type Config struct {
	Backend  string `yaml:"backend"`
	Language string `yaml:"language"`
	Stemmer  string `yaml:"stemmer"`

	ExtraStopWords []string `yaml:"extra_stop_words"`
	StopWordsFile  string   `yaml:"stop_words_file"`

	// number of terms reported per topic
	TopN int `yaml:"top_n"`

	Model model.Config `yaml:"model"`
}

func Default() Config {
	return Config{
		Backend:  "lda",
		Language: "english",
		Stemmer:  "porter",
		TopN:     10,
		Model:    model.DefaultConfig(),
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes YAML on top of the defaults and validates the result.
// An empty document yields the defaults.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every option, including the model parameters.
func (c Config) Validate() error {
	if _, err := model.GetModel(c.Backend); err != nil {
		return fmt.Errorf("%w: backend: %w", ErrInvalidConfig, err)
	}
	if !strings.EqualFold(c.Language, "english") {
		return fmt.Errorf("%w: language %q, only english is supported", ErrInvalidConfig, c.Language)
	}
	switch strings.ToLower(c.Stemmer) {
	case "", "porter", "snowball":
	default:
		return fmt.Errorf("%w: stemmer %q", ErrInvalidConfig, c.Stemmer)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("%w: top_n must be positive, got %d", ErrInvalidConfig, c.TopN)
	}
	if err := c.Model.Validate(); err != nil {
		return fmt.Errorf("%w: model: %w", ErrInvalidConfig, err)
	}
	return nil
}

// StopWords assembles the stop-word set: the bundled list of the
// language, the extra words and the words of the stop-word file.
func (c Config) StopWords() (*text.StopWords, error) {
	stops, err := text.LoadStopWords(c.Language)
	if err != nil {
		return nil, err
	}
	extra := c.ExtraStopWords
	if c.StopWordsFile != "" {
		sl, err := LoadStoplist(c.StopWordsFile)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		extra = append(extra[:len(extra):len(extra)], sl.Terms...)
	}
	return stops.With(extra...), nil
}
