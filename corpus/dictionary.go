package corpus

import (
	"slices"
	"sort"
)

// Dictionary maps terms to integer IDs and back. IDs are dense and
// start at zero. Within one document, terms seen for the first time get
// their IDs in lexicographic order, so the same batch always yields the
// same dictionary.
type Dictionary struct {
	token2id map[string]uint32
	id2token []string
	dfs      []uint32 // document frequency per ID

	numDocs uint64
	numPos  uint64 // tokens processed
	numNnz  uint64 // sum of distinct terms per document
}

// NewDictionary builds a dictionary over the tokenized documents.
func NewDictionary(texts [][]string) *Dictionary {
	d := &Dictionary{token2id: make(map[string]uint32)}
	for _, text := range texts {
		d.add(text)
	}
	return d
}

func (d *Dictionary) add(text []string) {
	counts := countTokens(text)

	var missing []string
	for tok := range counts {
		if _, ok := d.token2id[tok]; !ok {
			missing = append(missing, tok)
		}
	}
	sort.Strings(missing)
	for _, tok := range missing {
		d.token2id[tok] = uint32(len(d.id2token))
		d.id2token = append(d.id2token, tok)
		d.dfs = append(d.dfs, 0)
	}

	for tok := range counts {
		d.dfs[d.token2id[tok]] += 1
	}
	d.numDocs += 1
	d.numPos += uint64(len(text))
	d.numNnz += uint64(len(counts))
}

func countTokens(text []string) map[string]uint32 {
	counts := make(map[string]uint32, len(text))
	for _, tok := range text {
		counts[tok] += 1
	}
	return counts
}

// Doc2Bow encodes a tokenized document as a bag of words sorted by ID.
// Tokens that are not in the dictionary are dropped.
func (d *Dictionary) Doc2Bow(text []string) Bow {
	counts := make(map[uint32]uint32)
	for _, tok := range text {
		if id, ok := d.token2id[tok]; ok {
			counts[id] += 1
		}
	}
	bow := make(Bow, 0, len(counts))
	for id, n := range counts {
		bow = append(bow, WordCount{WordId: id, Count: n})
	}
	slices.SortFunc(bow, func(a, b WordCount) int {
		return int(a.WordId) - int(b.WordId)
	})
	return bow
}

// number of distinct terms
func (d *Dictionary) Len() int {
	return len(d.id2token)
}

// ID looks up the ID of a term.
func (d *Dictionary) ID(token string) (uint32, bool) {
	id, ok := d.token2id[token]
	return id, ok
}

// Token looks up the term behind an ID.
func (d *Dictionary) Token(id uint32) (string, bool) {
	if int(id) >= len(d.id2token) {
		return "", false
	}
	return d.id2token[id], true
}

// Tokens returns every term, indexed by ID.
func (d *Dictionary) Tokens() []string {
	return slices.Clone(d.id2token)
}

// DocFreq is the number of documents the term with this ID occurred in.
func (d *Dictionary) DocFreq(id uint32) uint32 {
	if int(id) >= len(d.dfs) {
		return 0
	}
	return d.dfs[id]
}

// number of documents the dictionary was built from
func (d *Dictionary) NumDocs() uint64 {
	return d.numDocs
}

// number of tokens the dictionary was built from
func (d *Dictionary) NumPos() uint64 {
	return d.numPos
}

// NumNnz is the number of non-zero entries the built corpus would have
// in a term-document matrix.
func (d *Dictionary) NumNnz() uint64 {
	return d.numNnz
}
