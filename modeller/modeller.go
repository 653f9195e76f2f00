// Package modeller cleans raw documents, fits a topic model over them
// and classifies unseen documents into their dominant topic.
package modeller

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	log "github.com/golang/glog"

	"github.com/prem1835/PeTaL/config"
	"github.com/prem1835/PeTaL/corpus"
	"github.com/prem1835/PeTaL/model"
	_ "github.com/prem1835/PeTaL/model/scvb"
	"github.com/prem1835/PeTaL/text"
)

// ErrNotTrained is returned by the read operations before the first
// successful Update.
var ErrNotTrained = errors.New("modeller: no model trained yet")

// TopicModeller is not safe for concurrent use. Callers serialise
// Update against the read operations.
type TopicModeller struct {
	cfg     config.Config
	cleaner *text.Cleaner

	model model.Model
	dict  *corpus.Dictionary
}

// New validates cfg and prepares the text pipeline. No model exists
// until the first successful Update.
func New(cfg config.Config) (*TopicModeller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	stops, err := cfg.StopWords()
	if err != nil {
		return nil, err
	}
	stemmer, err := text.NewStemmer(cfg.Stemmer, cfg.Language)
	if err != nil {
		return nil, err
	}
	return &TopicModeller{
		cfg:     cfg,
		cleaner: text.NewCleaner(stops, stemmer, text.EnglishExpander()),
	}, nil
}

// Clean yields the stemmed content words of doc. It does not depend on
// the model.
func (tm *TopicModeller) Clean(doc string) iter.Seq[string] {
	return tm.cleaner.Clean(doc)
}

// Update rebuilds the dictionary from exactly this batch and fits the
// model on it, or folds the batch into the existing model. On error the
// dictionary and model are left as they were.
func (tm *TopicModeller) Update(docs []string) error {
	texts := make([][]string, len(docs))
	for i, doc := range docs {
		texts[i] = slices.Collect(tm.Clean(doc))
	}
	c := corpus.New(texts)
	if c.DocNum() == 0 || c.VocabSize() == 0 {
		return fmt.Errorf("update: %w", model.ErrEmptyCorpus)
	}

	m := tm.model
	if m == nil {
		var err error
		if m, err = model.New(tm.cfg.Backend, tm.cfg.Model); err != nil {
			return fmt.Errorf("update: %w", err)
		}
	}
	if err := m.Update(c); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	log.V(2).Infof("modeller: trained %s on %d documents, %d terms",
		tm.cfg.Backend, c.DocNum(), c.VocabSize())

	tm.model = m
	tm.dict = c.Dict
	return nil
}

// DocumentTopics is the topic distribution of doc, leaving out topics
// below the minimum probability.
func (tm *TopicModeller) DocumentTopics(doc string) ([]model.TopicProb, error) {
	if !tm.Trained() {
		return nil, ErrNotTrained
	}
	bow := tm.dict.Doc2Bow(slices.Collect(tm.Clean(doc)))
	return tm.model.DocumentTopics(bow)
}

// Classify returns the top terms of the most probable topic of doc.
// Ties between topics go to the lowest topic ID.
func (tm *TopicModeller) Classify(doc string) ([]model.TermWeight, error) {
	topics, err := tm.DocumentTopics(doc)
	if err != nil {
		return nil, err
	}
	top, err := model.Dominant(topics)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	log.V(2).Infof("modeller: dominant topic %d with probability %.4f", top.Topic, top.Prob)
	return tm.model.ShowTopic(top.Topic, tm.cfg.TopN)
}

// ShowTopics lists the top numWords terms of every topic.
func (tm *TopicModeller) ShowTopics(numWords int) ([][]model.TermWeight, error) {
	if !tm.Trained() {
		return nil, ErrNotTrained
	}
	topics := make([][]model.TermWeight, tm.model.NumTopics())
	for k := range topics {
		terms, err := tm.model.ShowTopic(k, numWords)
		if err != nil {
			return nil, err
		}
		topics[k] = terms
	}
	return topics, nil
}

// Dictionary is the dictionary of the latest update, nil before.
func (tm *TopicModeller) Dictionary() *corpus.Dictionary {
	return tm.dict
}

// Trained reports whether an Update has succeeded.
func (tm *TopicModeller) Trained() bool {
	return tm.model != nil
}
