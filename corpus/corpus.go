package corpus

// WordCount is one entry of a bag of words: a dictionary ID and how
// many times the term occurs in the document.
type WordCount struct {
	WordId uint32
	Count  uint32
}

// Bow is a document as a bag of words, sorted by WordId.
type Bow []WordCount

// Corpus holds a batch of documents encoded against one dictionary.
type Corpus struct {
	Dict *Dictionary
	Docs []Bow
}

// New builds a fresh dictionary from the tokenized documents and
// encodes every document against it.
func New(texts [][]string) *Corpus {
	dict := NewDictionary(texts)
	docs := make([]Bow, len(texts))
	for i, text := range texts {
		docs[i] = dict.Doc2Bow(text)
	}
	return &Corpus{
		Dict: dict,
		Docs: docs,
	}
}

// number of distinct terms the corpus is encoded with
func (c *Corpus) VocabSize() uint32 {
	return uint32(c.Dict.Len())
}

// number of documents in the corpus
func (c *Corpus) DocNum() uint32 {
	return uint32(len(c.Docs))
}

// NumTokens counts every token of every document.
func (c *Corpus) NumTokens() uint64 {
	var n uint64
	for _, bow := range c.Docs {
		n += uint64(bow.Len())
	}
	return n
}

// Len is the number of tokens in the document.
func (b Bow) Len() uint32 {
	n := uint32(0)
	for _, wc := range b {
		n += wc.Count
	}
	return n
}

// ExpandWords turns a bag of words back into one word ID per token.
func ExpandWords(wcs Bow) []uint32 {
	words := make([]uint32, 0, wcs.Len())
	for _, wc := range wcs {
		for i := uint32(0); i < wc.Count; i += 1 {
			words = append(words, wc.WordId)
		}
	}
	return words
}
