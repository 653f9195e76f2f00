package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// English contractions, keyed by lower case form. Besides whole words
// the table covers the pieces Tokenize leaves behind ("do" "n't",
// "ca" "n't", "gon" "na").
var englishContractions = map[string]string{
	"ain't":     "are not",
	"aren't":    "are not",
	"can't":     "cannot",
	"can't've":  "cannot have",
	"'cause":    "because",
	"could've":  "could have",
	"couldn't":  "could not",
	"didn't":    "did not",
	"doesn't":   "does not",
	"don't":     "do not",
	"hadn't":    "had not",
	"hasn't":    "has not",
	"haven't":   "have not",
	"he'd":      "he would",
	"he'll":     "he will",
	"he's":      "he is",
	"how'd":     "how did",
	"how'll":    "how will",
	"how's":     "how is",
	"i'd":       "i would",
	"i'll":      "i will",
	"i'm":       "i am",
	"i've":      "i have",
	"isn't":     "is not",
	"it'd":      "it would",
	"it'll":     "it will",
	"it's":      "it is",
	"let's":     "let us",
	"ma'am":     "madam",
	"mightn't":  "might not",
	"might've":  "might have",
	"mustn't":   "must not",
	"must've":   "must have",
	"needn't":   "need not",
	"o'clock":   "of the clock",
	"shan't":    "shall not",
	"she'd":     "she would",
	"she'll":    "she will",
	"she's":     "she is",
	"should've": "should have",
	"shouldn't": "should not",
	"that's":    "that is",
	"there's":   "there is",
	"they'd":    "they would",
	"they'll":   "they will",
	"they're":   "they are",
	"they've":   "they have",
	"'tis":      "it is",
	"'twas":     "it was",
	"wasn't":    "was not",
	"we'd":      "we would",
	"we'll":     "we will",
	"we're":     "we are",
	"we've":     "we have",
	"weren't":   "were not",
	"what's":    "what is",
	"where's":   "where is",
	"who's":     "who is",
	"won't":     "will not",
	"wouldn't":  "would not",
	"would've":  "would have",
	"y'all":     "you all",
	"you'd":     "you would",
	"you'll":    "you will",
	"you're":    "you are",
	"you've":    "you have",

	// clitics and fused halves split off by Tokenize
	"n't": "not",
	"'re": "are",
	"'ve": "have",
	"'ll": "will",
	"'m":  "am",
	"'d":  "would",
	"'s":  "is",
	"'ye": "you",
	"'n":  "than",
	"'t":  "it",
	"ca":  "can",
	"wo":  "will",
	"sha": "shall",
	"gim": "give",
	"lem": "let",
	"gon": "going",
	"wan": "want",
	"na":  "to",
	"ta":  "to",
}

// Expander rewrites a contracted token into its full form.
type Expander struct {
	table map[string][]string
}

// NewExpander builds an expander over a lower case contraction table.
func NewExpander(table map[string]string) *Expander {
	e := &Expander{table: make(map[string][]string, len(table))}
	for k, v := range table {
		e.table[strings.ToLower(k)] = strings.Fields(v)
	}
	return e
}

// EnglishExpander expands English contractions.
func EnglishExpander() *Expander {
	return NewExpander(englishContractions)
}

// Expand returns the words a token stands for: the expansion when the
// token is a known contraction, the token itself otherwise, nothing for
// an empty token. A capitalised or all caps token keeps its casing.
func (e *Expander) Expand(token string) []string {
	if token == "" {
		return nil
	}
	words, ok := e.table[strings.ToLower(token)]
	if !ok {
		return []string{token}
	}

	out := make([]string, len(words))
	copy(out, words)
	switch {
	case isUpper(token) && utf8.RuneCountInString(token) > 1:
		for i := range out {
			out[i] = strings.ToUpper(out[i])
		}
	case startsUpper(token):
		out[0] = capitalise(out[0])
	}
	return out
}

func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func startsUpper(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return unicode.IsUpper(r)
		}
	}
	return false
}

func capitalise(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
