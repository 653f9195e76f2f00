package model

import (
	"fmt"
)

// Config holds the parameters shared by every backend.
type Config struct {
	NumTopics  int `yaml:"num_topics"`
	Passes     int `yaml:"passes"`     // sweeps over a batch per update
	Iterations int `yaml:"iterations"` // max sweeps when inferring one document

	// "symmetric", "asymmetric", "auto" or a positive number
	Alpha string `yaml:"alpha"`
	// topic-term prior, zero means 1/NumTopics
	Eta float64 `yaml:"eta"`

	// incremental updates weigh batch t by (Offset + t)^-Decay
	Decay  float64 `yaml:"decay"`
	Offset float64 `yaml:"offset"`

	MinimumProbability float64 `yaml:"minimum_probability"`
	GammaThreshold     float64 `yaml:"gamma_threshold"`
	EvalEvery          int     `yaml:"eval_every"`

	// nil seeds from the clock
	RandomState *int64 `yaml:"random_state"`
	// zero means GOMAXPROCS
	Workers int `yaml:"workers"`
}

func DefaultConfig() Config {
	return Config{
		NumTopics:          100,
		Passes:             1,
		Iterations:         50,
		Alpha:              "symmetric",
		Eta:                0,
		Decay:              0.5,
		Offset:             1.0,
		MinimumProbability: 0.01,
		GammaThreshold:     0.001,
		EvalEvery:          10,
	}
}

// Validate reports the first parameter that is out of range.
func (c Config) Validate() error {
	switch {
	case c.NumTopics <= 0:
		return fmt.Errorf("%w: num_topics must be positive, got %d", ErrBadParam, c.NumTopics)
	case c.Passes <= 0:
		return fmt.Errorf("%w: passes must be positive, got %d", ErrBadParam, c.Passes)
	case c.Iterations <= 0:
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrBadParam, c.Iterations)
	case c.Eta < 0:
		return fmt.Errorf("%w: eta must not be negative, got %g", ErrBadParam, c.Eta)
	case c.Decay <= 0 || c.Decay > 1:
		return fmt.Errorf("%w: decay must be in (0, 1], got %g", ErrBadParam, c.Decay)
	case c.Offset < 1:
		return fmt.Errorf("%w: offset must be at least 1, got %g", ErrBadParam, c.Offset)
	case c.MinimumProbability < 0 || c.MinimumProbability > 1:
		return fmt.Errorf("%w: minimum_probability must be in [0, 1], got %g",
			ErrBadParam, c.MinimumProbability)
	case c.GammaThreshold < 0:
		return fmt.Errorf("%w: gamma_threshold must not be negative, got %g",
			ErrBadParam, c.GammaThreshold)
	case c.EvalEvery < 0:
		return fmt.Errorf("%w: eval_every must not be negative, got %d", ErrBadParam, c.EvalEvery)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrBadParam, c.Workers)
	}
	_, err := ParseAlpha(c.Alpha)
	return err
}

// TopicEta resolves the topic-term prior.
func (c Config) TopicEta() float64 {
	if c.Eta == 0 {
		return 1 / float64(c.NumTopics)
	}
	return c.Eta
}
