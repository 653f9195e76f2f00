package scvb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prem1835/PeTaL/corpus"
	"github.com/prem1835/PeTaL/model"
)

func testConfig() model.Config {
	cfg := model.DefaultConfig()
	cfg.NumTopics = 2
	cfg.Passes = 30
	cfg.Workers = 1
	return cfg
}

func TestRegistered(t *testing.T) {
	m, err := model.New("scvb", testConfig())
	require.NoError(t, err)
	assert.IsType(t, &SCVB{}, m)
	assert.Equal(t, 2, m.NumTopics())
}

func TestAlphaFallback(t *testing.T) {
	cfg := testConfig()
	cfg.Alpha = "auto"
	m, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.5, m.(*SCVB).alpha)

	cfg.Alpha = "0.3"
	m, err = New(cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.3, m.(*SCVB).alpha)

	cfg.Alpha = "wrong"
	_, err = New(cfg)
	assert.ErrorIs(t, err, model.ErrBadParam)
}

func TestUnfitted(t *testing.T) {
	m, err := New(testConfig())
	require.NoError(t, err)

	_, err = m.DocumentTopics(nil)
	assert.ErrorIs(t, err, model.ErrNotFitted)
	_, err = m.ShowTopic(0, 1)
	assert.ErrorIs(t, err, model.ErrNotFitted)
	assert.ErrorIs(t, m.Update(corpus.New(nil)), model.ErrEmptyCorpus)
}

func TestTermDocMatrix(t *testing.T) {
	docs := []corpus.Bow{
		{{WordId: 0, Count: 2}, {WordId: 2, Count: 1}},
		{{WordId: 1, Count: 3}},
	}
	m := termDocMatrix(docs, 3)

	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 2.0, m.At(0, 0))
	assert.Equal(t, 1.0, m.At(2, 0))
	assert.Equal(t, 3.0, m.At(1, 1))
	assert.Equal(t, 0.0, m.At(1, 0))
}

func TestFit(t *testing.T) {
	c := corpus.New([][]string{
		{"apple", "banana", "cherry", "apple"},
		{"engine", "wheel", "brake", "engine"},
		{"banana", "cherry", "banana", "apple"},
		{"wheel", "brake", "wheel", "engine"},
	})
	m, err := New(testConfig())
	require.NoError(t, err)
	require.NoError(t, m.Update(c))

	for k := 0; k < 2; k += 1 {
		top, err := m.ShowTopic(k, c.Dict.Len())
		require.NoError(t, err)
		require.Len(t, top, c.Dict.Len())
		sum := 0.0
		for _, tw := range top {
			sum += tw.Weight
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
	_, err = m.ShowTopic(2, 1)
	assert.ErrorIs(t, err, model.ErrTopicOutOfRange)

	topics, err := m.DocumentTopics(c.Docs[0])
	require.NoError(t, err)
	assert.NotEmpty(t, topics)

	// nothing known falls back to the prior
	topics, err = m.DocumentTopics(nil)
	require.NoError(t, err)
	assert.Equal(t, []model.TopicProb{{Topic: 0, Prob: 0.5}, {Topic: 1, Prob: 0.5}}, topics)
}

func TestFitDeterministic(t *testing.T) {
	texts := [][]string{
		{"apple", "banana", "cherry", "apple"},
		{"engine", "wheel", "brake", "engine"},
		{"banana", "cherry", "banana", "apple"},
		{"wheel", "brake", "wheel", "engine"},
	}
	seed := int64(42)
	cfg := testConfig()
	cfg.RandomState = &seed
	cfg.Workers = 4

	fit := func() model.Model {
		m, err := New(cfg)
		require.NoError(t, err)
		require.NoError(t, m.Update(corpus.New(texts)))
		return m
	}
	a, b := fit(), fit()
	assert.Equal(t, 1, a.(*SCVB).newLDA().Processes)

	for k := 0; k < 2; k += 1 {
		ta, err := a.ShowTopic(k, 6)
		require.NoError(t, err)
		tb, err := b.ShowTopic(k, 6)
		require.NoError(t, err)
		assert.Equal(t, ta, tb)
	}

	bow := corpus.New(texts).Dict.Doc2Bow([]string{"apple", "wheel"})
	pa, err := a.DocumentTopics(bow)
	require.NoError(t, err)
	pb, err := b.DocumentTopics(bow)
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}
