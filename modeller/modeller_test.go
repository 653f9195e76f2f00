package modeller

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prem1835/PeTaL/config"
	"github.com/prem1835/PeTaL/model"
)

var (
	docA = "Brocolli is good to eat. My brother likes to eat good brocolli, but not my mother."
	docB = "My mother spends a lot of time driving my brother around to baseball practice."
	docC = "Some health experts suggest that driving may cause increased tension and blood pressure."
	docD = "I often feel pressure to perform well at school, but my mother never seems to drive my brother to do better."
	docE = "Health professionals say that brocolli is good for your health."

	training = []string{docA, docB, docC, docD}
)

func demoConfig(seed int64) config.Config {
	cfg := config.Default()
	cfg.TopN = 100
	cfg.Model.NumTopics = 3
	cfg.Model.Passes = 20
	cfg.Model.Alpha = "auto"
	cfg.Model.MinimumProbability = 0.01
	cfg.Model.Decay = 0.5
	cfg.Model.RandomState = &seed
	return cfg
}

func newModeller(t *testing.T, cfg config.Config) *TopicModeller {
	t.Helper()
	tm, err := New(cfg)
	require.NoError(t, err)
	return tm
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.TopN = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg = config.Default()
	cfg.Backend = "plsa"
	_, err = New(cfg)
	assert.ErrorIs(t, err, model.ErrUnknownModel)
}

func TestBackendsRegistered(t *testing.T) {
	assert.Subset(t, model.Registered(), []string{"lda", "scvb"})
}

func TestClassifyDemo(t *testing.T) {
	tm := newModeller(t, demoConfig(1))
	require.NoError(t, tm.Update(training))
	require.True(t, tm.Trained())

	terms, err := tm.Classify(docE)
	require.NoError(t, err)
	require.NotEmpty(t, terms)

	found := false
	for i, tw := range terms {
		if tw.Term == "health" || tw.Term == "brocolli" {
			found = found || tw.Weight > 0
		}
		if i > 0 {
			assert.LessOrEqual(t, tw.Weight, terms[i-1].Weight)
		}
	}
	assert.True(t, found, "health or brocolli missing from %v", terms)
}

func TestClassifyReportsTopN(t *testing.T) {
	cfg := demoConfig(1)
	cfg.TopN = 3
	tm := newModeller(t, cfg)
	require.NoError(t, tm.Update(training))

	terms, err := tm.Classify(docE)
	require.NoError(t, err)
	assert.Len(t, terms, 3)
}

func TestNotTrained(t *testing.T) {
	tm := newModeller(t, demoConfig(1))

	_, err := tm.Classify(docE)
	assert.ErrorIs(t, err, ErrNotTrained)
	_, err = tm.DocumentTopics(docE)
	assert.ErrorIs(t, err, ErrNotTrained)
	_, err = tm.ShowTopics(5)
	assert.ErrorIs(t, err, ErrNotTrained)
	assert.False(t, tm.Trained())
	assert.Nil(t, tm.Dictionary())
}

func TestUpdateEmpty(t *testing.T) {
	tm := newModeller(t, demoConfig(1))

	assert.ErrorIs(t, tm.Update(nil), model.ErrEmptyCorpus)
	_, err := tm.Classify(docE)
	assert.ErrorIs(t, err, ErrNotTrained)

	// nothing but stop words and punctuation
	assert.ErrorIs(t, tm.Update([]string{"I am, and you are.", "..."}), model.ErrEmptyCorpus)
	assert.False(t, tm.Trained())
}

func TestFailedUpdateKeepsState(t *testing.T) {
	tm := newModeller(t, demoConfig(1))
	require.NoError(t, tm.Update(training))
	dict := tm.Dictionary()

	assert.ErrorIs(t, tm.Update([]string{}), model.ErrEmptyCorpus)
	assert.Same(t, dict, tm.Dictionary())
	assert.True(t, tm.Trained())
}

func TestDeterministic(t *testing.T) {
	a := newModeller(t, demoConfig(7))
	b := newModeller(t, demoConfig(7))
	require.NoError(t, a.Update(training))
	require.NoError(t, b.Update(training))

	ta, err := a.Classify(docE)
	require.NoError(t, err)
	tb, err := b.Classify(docE)
	require.NoError(t, err)
	assert.Equal(t, ta, tb)
}

func TestUpdateReplacesDictionary(t *testing.T) {
	tm := newModeller(t, demoConfig(3))
	require.NoError(t, tm.Update(training))
	_, ok := tm.Dictionary().ID("brocolli")
	require.True(t, ok)

	require.NoError(t, tm.Update([]string{"Baseball practice causes tension.", "Tension raises blood pressure."}))
	_, ok = tm.Dictionary().ID("brocolli")
	assert.False(t, ok)
	assert.Equal(t, 2, int(tm.Dictionary().NumDocs()))

	for _, topic := range mustShowTopics(t, tm, 100) {
		for _, tw := range topic {
			_, ok := tm.Dictionary().ID(tw.Term)
			assert.True(t, ok, tw.Term)
		}
	}

	_, err := tm.Classify(docE)
	assert.NoError(t, err)
}

func mustShowTopics(t *testing.T, tm *TopicModeller, n int) [][]model.TermWeight {
	t.Helper()
	topics, err := tm.ShowTopics(n)
	require.NoError(t, err)
	return topics
}

func TestShowTopics(t *testing.T) {
	tm := newModeller(t, demoConfig(1))
	require.NoError(t, tm.Update(training))

	topics := mustShowTopics(t, tm, 4)
	assert.Len(t, topics, 3)
	for _, topic := range topics {
		assert.Len(t, topic, 4)
	}
}

func TestDocumentTopics(t *testing.T) {
	tm := newModeller(t, demoConfig(1))
	require.NoError(t, tm.Update(training))

	topics, err := tm.DocumentTopics(docE)
	require.NoError(t, err)
	require.NotEmpty(t, topics)
	for _, tp := range topics {
		assert.GreaterOrEqual(t, tp.Prob, 0.01)
		assert.Less(t, tp.Topic, 3)
	}

	// unknown words only, the answer comes from the prior
	topics, err = tm.DocumentTopics("Zebras gallop.")
	require.NoError(t, err)
	assert.NotEmpty(t, topics)
}

func TestCleanIndependentOfModel(t *testing.T) {
	tm := newModeller(t, demoConfig(1))
	before := slices.Collect(tm.Clean(docA))
	require.NoError(t, tm.Update(training))
	after := slices.Collect(tm.Clean(docA))

	assert.Equal(t, before, after)
	assert.Equal(t, []string{"brocolli", "good", "eat", "brother", "like", "eat", "good", "brocolli", "mother"}, after)
}

func TestDictionaryMatchesCorpus(t *testing.T) {
	tm := newModeller(t, demoConfig(1))
	require.NoError(t, tm.Update(training))
	dict := tm.Dictionary()

	for _, doc := range training {
		cleaned := slices.Collect(tm.Clean(doc))
		for _, wc := range dict.Doc2Bow(cleaned) {
			term, ok := dict.Token(wc.WordId)
			require.True(t, ok)
			assert.Contains(t, cleaned, term)
		}
	}
	assert.Equal(t, 4, int(dict.NumDocs()))
}

func TestSnowballStemmer(t *testing.T) {
	cfg := demoConfig(1)
	cfg.Stemmer = "snowball"
	tm := newModeller(t, cfg)

	assert.Equal(t, []string{"like", "run"}, slices.Collect(tm.Clean("I don't like running.")))
}

func TestSCVBBackend(t *testing.T) {
	cfg := demoConfig(1)
	cfg.Backend = "scvb"
	cfg.Model.Alpha = "symmetric"
	cfg.Model.RandomState = nil
	cfg.Model.Workers = 1
	tm := newModeller(t, cfg)
	require.NoError(t, tm.Update(training))

	terms, err := tm.Classify(docE)
	require.NoError(t, err)
	assert.NotEmpty(t, terms)
}
