package text

import (
	"iter"
	"strings"
)

// ASCII punctuation symbols
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// IsPunctuation reports whether tok is made of punctuation symbols only.
// Treebank tokens such as ``, '', ... and -- count as punctuation.
func IsPunctuation(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !strings.ContainsRune(Punctuation, r) {
			return false
		}
	}
	return true
}

// Cleaner turns raw text into the stemmed content words used as terms.
type Cleaner struct {
	stops    *StopWords
	stemmer  Stemmer
	expander *Expander
}

func NewCleaner(stops *StopWords, stemmer Stemmer, expander *Expander) *Cleaner {
	return &Cleaner{
		stops:    stops,
		stemmer:  stemmer,
		expander: expander,
	}
}

// Clean tokenizes doc, expands contractions, drops stop words and
// punctuation, and yields the stem of every remaining word in document
// order. Duplicates are kept.
//
// Words are not case folded, but the stemmers lower case their output,
// so a capitalised filler word ("My") only turns into a stop word after
// stemming. Stems are checked against the stop list a second time so
// that no stop word is ever yielded.
func (c *Cleaner) Clean(doc string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, tok := range Tokenize(doc) {
			for _, word := range c.expander.Expand(tok) {
				if c.stops.Contains(word) || IsPunctuation(word) {
					continue
				}
				stem := c.stemmer.Stem(word)
				if c.stops.Contains(stem) {
					continue
				}
				if !yield(stem) {
					return
				}
			}
		}
	}
}
