package text

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kljensen/snowball"
	porterstemmer "github.com/reiver/go-porterstemmer"
)

var ErrUnknownStemmer = errors.New("text: unknown stemmer")

// Stemmer reduces a surface word form to its root form. Implementations
// are stateless and safe to share.
type Stemmer interface {
	Stem(word string) string
}

// PorterStemmer is the classic Porter algorithm. Output is lower case.
type PorterStemmer struct{}

// Stem returns the lower cased word itself when the library fails on it.
// It indexes before the start of very short stems such as "eed".
func (PorterStemmer) Stem(word string) (stem string) {
	defer func() {
		if r := recover(); r != nil {
			stem = strings.ToLower(word)
		}
	}()
	return porterstemmer.StemString(word)
}

// SnowballStemmer runs the Snowball stemmer of one language.
type SnowballStemmer struct {
	language string
}

// NewSnowballStemmer checks that Snowball supports the language.
func NewSnowballStemmer(language string) (*SnowballStemmer, error) {
	language = strings.ToLower(language)
	if _, err := snowball.Stem("running", language, true); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedLanguage, err)
	}
	return &SnowballStemmer{language: language}, nil
}

func (s *SnowballStemmer) Stem(word string) string {
	stemmed, err := snowball.Stem(word, s.language, true)
	if err != nil {
		// only an unsupported language fails, and that was ruled out
		return word
	}
	return stemmed
}

// NewStemmer resolves a stemmer by name ("porter" or "snowball").
func NewStemmer(name, language string) (Stemmer, error) {
	switch strings.ToLower(name) {
	case "", "porter":
		if !strings.EqualFold(language, "english") {
			return nil, fmt.Errorf("%w: porter stemmer is english only, got %q",
				ErrUnsupportedLanguage, language)
		}
		return PorterStemmer{}, nil
	case "snowball":
		return NewSnowballStemmer(language)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStemmer, name)
	}
}
