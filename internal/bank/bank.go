// Package bank loads the question dataset and serves random questions from it.
//
// The dataset is a static table of (category, question, reference answer) rows.
// It is treated as read-only; the bank reloads it from disk when the configured
// TTL has passed, so dataset edits show up without a restart.
package bank

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"log/slog"

	"interviewsim/internal/errors"
	"interviewsim/internal/models"
)

var (
	// ErrDataUnavailable means the question source is missing or has zero rows.
	ErrDataUnavailable = errors.NewSentinel("question data unavailable")
	// ErrNoQuestionsInCategory means the category filter matched nothing.
	ErrNoQuestionsInCategory = errors.NewSentinel("no questions in category")
)

// CategoryAll is the synthetic category label matching every question.
const CategoryAll = "All"

const defaultTTL = time.Hour

// Bank is a cached view over the question file. Safe for concurrent use.
type Bank struct {
	path   string
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu        sync.RWMutex
	questions []models.Question
	loadedAt  time.Time
}

// New constructs a bank over the question file at path without loading it yet.
func New(path string, logger *slog.Logger) *Bank {
	return &Bank{
		path:   path,
		ttl:    defaultTTL,
		logger: logger.With("source", "Bank"),
		now:    time.Now,
	}
}

// Load reads the question file into memory. It fails with ErrDataUnavailable
// when the file is missing, unreadable, or contains zero rows.
func (b *Bank) Load() error {
	questions, err := loadFile(b.path)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.questions = questions
	b.loadedAt = b.now()
	b.mu.Unlock()

	b.logger.Info("loaded question bank", slog.Int("questions", len(questions)), slog.String("path", b.path))
	return nil
}

// refresh reloads the file when the TTL has passed. A failed reload keeps
// serving the previous rows since the dataset rarely changes shape.
func (b *Bank) refresh() {
	b.mu.RLock()
	stale := b.now().Sub(b.loadedAt) > b.ttl
	b.mu.RUnlock()
	if !stale {
		return
	}
	if err := b.Load(); err != nil {
		b.logger.Warn("question bank reload failed, keeping cached rows", errors.SlogError(err))
	}
}

// Sample returns one question chosen uniformly at random from the subset
// matching category, or from the whole table for CategoryAll. Sampling is
// stateless: repeats across calls are possible.
func (b *Bank) Sample(category string) (models.Question, error) {
	b.refresh()

	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.questions) == 0 {
		return models.Question{}, ErrDataUnavailable
	}

	if category == CategoryAll {
		return b.questions[rand.Intn(len(b.questions))], nil
	}

	var filtered []models.Question
	for _, q := range b.questions {
		if q.Category == category {
			filtered = append(filtered, q)
		}
	}
	if len(filtered) == 0 {
		return models.Question{}, errors.Wrap(ErrNoQuestionsInCategory, "sample question",
			slog.String("category", category))
	}
	return filtered[rand.Intn(len(filtered))], nil
}

// Categories returns the distinct category labels sorted alphabetically, with
// CategoryAll prepended for the selection control.
func (b *Bank) Categories() []string {
	b.refresh()

	b.mu.RLock()
	defer b.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, q := range b.questions {
		seen[q.Category] = struct{}{}
	}
	categories := make([]string, 0, len(seen)+1)
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return append([]string{CategoryAll}, categories...)
}

// Size returns the number of loaded questions.
func (b *Bank) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.questions)
}
