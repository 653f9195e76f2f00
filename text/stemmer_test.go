package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPorterStemmer(t *testing.T) {
	s := PorterStemmer{}

	assert.Equal(t, "run", s.Stem("running"))
	assert.Equal(t, "run", s.Stem("Running"))
	assert.Equal(t, "cat", s.Stem("cats"))
	assert.Equal(t, "health", s.Stem("health"))
	assert.Equal(t, "brocolli", s.Stem("brocolli"))
}

func TestPorterStemmerShortStems(t *testing.T) {
	s := PorterStemmer{}

	cases := map[string]string{
		"eed":  "eed",
		"EED":  "eed",
		"Eed":  "eed",
		"eeds": "eeds",
		"eing": "eing",
	}
	for in, want := range cases {
		assert.NotPanics(t, func() { s.Stem(in) }, in)
		assert.Equal(t, want, s.Stem(in), in)
	}
}

func TestSnowballStemmer(t *testing.T) {
	s, err := NewSnowballStemmer("english")
	require.NoError(t, err)

	assert.Equal(t, "run", s.Stem("running"))
	assert.Equal(t, "cat", s.Stem("cats"))

	_, err = NewSnowballStemmer("klingon")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestNewStemmer(t *testing.T) {
	s, err := NewStemmer("", "english")
	require.NoError(t, err)
	assert.IsType(t, PorterStemmer{}, s)

	s, err = NewStemmer("snowball", "English")
	require.NoError(t, err)
	assert.IsType(t, &SnowballStemmer{}, s)

	_, err = NewStemmer("porter", "french")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)

	_, err = NewStemmer("lancaster", "english")
	assert.ErrorIs(t, err, ErrUnknownStemmer)
}
