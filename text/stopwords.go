package text

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedLanguage = errors.New("text: unsupported language")

//go:embed stopwords_english.txt
var englishStopWords string

// StopWords is an immutable set of filler words. Lookups are exact: the
// bundled lists are lower case and no case folding happens here.
type StopWords struct {
	set map[string]struct{}
}

// NewStopWords builds a stop-word set from the given words.
func NewStopWords(words ...string) *StopWords {
	s := &StopWords{set: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			s.set[w] = struct{}{}
		}
	}
	return s
}

// LoadStopWords returns the bundled stop-word list for a language.
func LoadStopWords(language string) (*StopWords, error) {
	switch strings.ToLower(language) {
	case "english":
		return NewStopWords(strings.Split(englishStopWords, "\n")...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
}

// Contains reports whether word is a stop word.
func (s *StopWords) Contains(word string) bool {
	_, ok := s.set[word]
	return ok
}

// With returns a new set holding s plus the extra words.
func (s *StopWords) With(words ...string) *StopWords {
	out := NewStopWords(words...)
	for w := range s.set {
		out.set[w] = struct{}{}
	}
	return out
}

// number of stop words in the set
func (s *StopWords) Len() int {
	return len(s.set)
}
