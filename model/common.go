package model

import (
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/prem1835/PeTaL/corpus"
)

// FilterTopics keeps the topics whose probability reaches min, in
// topic order.
func FilterTopics(theta []float64, min float64) []TopicProb {
	topics := make([]TopicProb, 0, len(theta))
	for k, p := range theta {
		if p >= min {
			topics = append(topics, TopicProb{Topic: k, Prob: p})
		}
	}
	return topics
}

// Dominant picks the most probable topic. On a tie the lowest topic ID
// wins.
func Dominant(topics []TopicProb) (TopicProb, error) {
	if len(topics) == 0 {
		return TopicProb{}, ErrNoTopics
	}
	sorted := slices.Clone(topics)
	slices.SortFunc(sorted, func(a, b TopicProb) int {
		return a.Topic - b.Topic
	})
	probs := make([]float64, len(sorted))
	for i, t := range sorted {
		probs[i] = t.Prob
	}
	// MaxIdx returns the first maximum
	return sorted[floats.MaxIdx(probs)], nil
}

// TopTerms returns the topn heaviest terms of one topic's weights,
// indexed by term ID, heaviest first. Equal weights keep ID order.
func TopTerms(weights []float64, dict *corpus.Dictionary, topn int) []TermWeight {
	ids := make([]int, len(weights))
	for i := range ids {
		ids[i] = i
	}
	slices.SortStableFunc(ids, func(a, b int) int {
		switch {
		case weights[a] > weights[b]:
			return -1
		case weights[a] < weights[b]:
			return 1
		}
		return 0
	})

	if topn > len(ids) {
		topn = len(ids)
	}
	if topn < 0 {
		topn = 0
	}
	terms := make([]TermWeight, 0, topn)
	for _, id := range ids[:topn] {
		term, _ := dict.Token(uint32(id))
		terms = append(terms, TermWeight{Term: term, Weight: weights[id]})
	}
	return terms
}

// Normalised turns a non-negative vector into a distribution. A zero
// vector becomes uniform.
func Normalised(v []float64) []float64 {
	out := slices.Clone(v)
	sum := floats.Sum(out)
	if sum <= 0 {
		for i := range out {
			out[i] = 1 / float64(len(out))
		}
		return out
	}
	floats.Scale(1/sum, out)
	return out
}
