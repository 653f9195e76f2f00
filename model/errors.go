package model

import "errors"

var (
	ErrUnknownModel    = errors.New("model: backend not registered")
	ErrBadParam        = errors.New("model: invalid parameter")
	ErrEmptyCorpus     = errors.New("model: corpus has no documents or no terms")
	ErrNotFitted       = errors.New("model: not fitted yet")
	ErrNoTopics        = errors.New("model: no topic above minimum probability")
	ErrTopicOutOfRange = errors.New("model: topic out of range")
)
