package model

import (
	"fmt"
	"sort"

	"github.com/prem1835/PeTaL/corpus"
)

var constructors = make(map[string]ModelCtor)

// TopicProb is the share of one topic in a document.
type TopicProb struct {
	Topic int
	Prob  float64
}

// TermWeight is the weight of one term in a topic.
type TermWeight struct {
	Term   string
	Weight float64
}

// the common interface topic model backends should follow
type Model interface {
	// fit the first corpus, or fold a later corpus into the fitted state
	Update(c *corpus.Corpus) error
	// infer the topic mixture of an unseen document, encoded against the
	// dictionary of the latest update, leaving out topics below the
	// minimum probability
	DocumentTopics(bow corpus.Bow) ([]TopicProb, error)
	// get the topn heaviest terms of a topic
	ShowTopic(topic, topn int) ([]TermWeight, error)
	// number of topics
	NumTopics() int
}

// ModelCtor builds an unfitted model from its parameters.
type ModelCtor func(cfg Config) (Model, error)

// new backends should register themselves using this function
func Register(modelType string, m ModelCtor) {
	constructors[modelType] = m
}

func GetModel(modelType string) (ModelCtor, error) {
	if _, ok := constructors[modelType]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, modelType)
	}
	return constructors[modelType], nil
}

// New validates cfg and builds a model of the registered type.
func New(modelType string, cfg Config) (Model, error) {
	ctor, err := GetModel(modelType)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return ctor(cfg)
}

// Registered lists the registered backend names in sorted order.
func Registered() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
