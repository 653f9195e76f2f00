package text

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

func rule(expr, repl string) rewrite {
	return rewrite{re: regexp.MustCompile(expr), repl: repl}
}

func (r rewrite) apply(s string) string {
	return r.re.ReplaceAllString(s, r.repl)
}

// Penn Treebank conventions, applied one sentence at a time.
var (
	startingQuotes = []rewrite{
		rule(`^"`, "``"),
		rule("(``)", " ${1} "),
		rule(`([ (\[{<])("|'{2})`, "${1} `` "),
	}

	punctuation = []rewrite{
		rule(`([:,])([^\d])`, " ${1} ${2}"),
		rule(`([:,])$`, " ${1} "),
		rule(`\.\.\.`, " ... "),
		rule(`[;@#$%&]`, " ${0} "),
		rule(`([^.])(\.)([\]\)}>"']*)\s*$`, "${1} ${2}${3} "),
		rule(`[?!]`, " ${0} "),
		rule(`([^'])' `, "${1} ' "),
	}

	brackets = rule(`[\]\[(){}<>]`, " ${0} ")
	dashes   = rule(`--`, " -- ")

	endingQuotes = []rewrite{
		rule(`"`, " '' "),
		rule(`(\S)('')`, "${1} ${2} "),
		rule(`([^' ])('[sS]|'[mM]|'[dD]|') `, "${1} ${2} "),
		rule(`([^' ])('ll|'LL|'re|'RE|'ve|'VE|n't|N'T) `, "${1} ${2} "),
	}

	fusedWords = []rewrite{
		rule(`(?i)\b(can)(not)\b`, " ${1} ${2} "),
		rule(`(?i)\b(d)('ye)\b`, " ${1} ${2} "),
		rule(`(?i)\b(gim)(me)\b`, " ${1} ${2} "),
		rule(`(?i)\b(gon)(na)\b`, " ${1} ${2} "),
		rule(`(?i)\b(got)(ta)\b`, " ${1} ${2} "),
		rule(`(?i)\b(lem)(me)\b`, " ${1} ${2} "),
		rule(`(?i)\b(more)('n)\b`, " ${1} ${2} "),
		rule(`(?i)\b(wan)(na)\s`, " ${1} ${2} "),
		rule(`(?i) ('t)(is)\b`, " ${1} ${2} "),
		rule(`(?i) ('t)(was)\b`, " ${1} ${2} "),
	}

	quoteFolding = strings.NewReplacer("’", "'", "‘", "'", "“", `"`, "”", `"`)
)

// words that end in a period without ending the sentence
var abbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "sr": {}, "jr": {},
	"st": {}, "vs": {}, "etc": {}, "e.g": {}, "i.e": {}, "inc": {}, "ltd": {},
	"co": {}, "corp": {}, "no": {}, "fig": {}, "approx": {}, "dept": {},
}

// Tokenize splits raw text into word level tokens the way the Penn
// Treebank does: punctuation becomes separate tokens, clitics such as
// n't and 're are split from their host word, and fused forms like
// cannot are separated. The text is split into sentences first so that
// periods inside the document are separated as well.
func Tokenize(doc string) []string {
	doc = quoteFolding.Replace(norm.NFC.String(doc))

	var tokens []string
	for _, sentence := range SplitSentences(doc) {
		tokens = append(tokens, tokenizeSentence(sentence)...)
	}
	return tokens
}

func tokenizeSentence(s string) []string {
	for _, r := range startingQuotes {
		s = r.apply(s)
	}
	for _, r := range punctuation {
		s = r.apply(s)
	}
	s = brackets.apply(s)
	s = dashes.apply(s)

	s = " " + s + " "
	for _, r := range endingQuotes {
		s = r.apply(s)
	}
	for _, r := range fusedWords {
		s = r.apply(s)
	}
	return strings.Fields(s)
}

// SplitSentences breaks text after '.', '!' or '?' followed by
// whitespace. Known abbreviations and single letter initials do not end
// a sentence.
func SplitSentences(doc string) []string {
	words := strings.Fields(doc)

	var sentences []string
	start := 0
	for i, w := range words {
		if i+1 < len(words) && endsSentence(w) {
			sentences = append(sentences, strings.Join(words[start:i+1], " "))
			start = i + 1
		}
	}
	if start < len(words) {
		sentences = append(sentences, strings.Join(words[start:], " "))
	}
	return sentences
}

func endsSentence(word string) bool {
	w := strings.TrimRight(word, `"')]}`)
	if w == "" {
		return false
	}
	switch w[len(w)-1] {
	case '!', '?':
		return true
	case '.':
	default:
		return false
	}

	base := strings.ToLower(strings.TrimRight(w, "."))
	if base == "" {
		return false
	}
	if _, ok := abbreviations[base]; ok {
		return false
	}
	// initials such as "J."
	if len([]rune(base)) == 1 {
		return false
	}
	return true
}
