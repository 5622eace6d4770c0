package services

import "errors"

var (
	ErrRoadmapNotFound       = errors.New("roadmap not found")
	ErrTopicNotFound         = errors.New("topic not found in roadmap")
	ErrTopicAlreadyCompleted = errors.New("topic already completed")
	ErrAlreadyFollowing      = errors.New("already following this roadmap")
)
