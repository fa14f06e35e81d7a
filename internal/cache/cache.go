package cache

import (
	"context"
	"time"
)

// Entity families a cached response can depend on. A write invalidates the
// families it touches instead of the whole cache.
const (
	TagSubjects  = "subjects"
	TagChapters  = "chapters"
	TagQuizzes   = "quizzes"
	TagQuestions = "questions"
	TagUsers     = "users"
	TagScores    = "scores"
	TagStats     = "stats"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error
	Invalidator
}

type Invalidator interface {
	InvalidateTags(ctx context.Context, tags ...string) error
}

// Noop satisfies Invalidator for code paths built without a cache.
type Noop struct{}

func (Noop) InvalidateTags(context.Context, ...string) error { return nil }
