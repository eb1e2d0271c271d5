package quiz

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/prefquiz/prefquiz/internal/grading"
)

const maxDistractors = 3

// Repository renders questions for presentation: the stored prompt and answer
// plus up to three distractors drawn from the other questions' answers.
type Repository struct {
	store Store
	rng   *rand.Rand
}

type RepositoryOption func(*Repository)

// WithRand replaces the shuffle source, for deterministic tests.
func WithRand(rng *rand.Rand) RepositoryOption {
	return func(r *Repository) { r.rng = rng }
}

func NewRepository(store Store, opts ...RepositoryOption) *Repository {
	r := &Repository{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fetch builds the view for one question. Distractors are distinct from the
// correct answer and from each other by normalized value, not by question id:
// two questions sharing an answer text must not both show up in one option
// set. Fewer than three alternatives degrades to a shorter list.
func (r *Repository) Fetch(ctx context.Context, id int64) (QuestionView, error) {
	q, err := r.store.Question(ctx, id)
	if err != nil {
		return QuestionView{}, err
	}
	correct := strings.TrimSpace(q.Answer)

	texts, err := r.store.AnswerTexts(ctx)
	if err != nil {
		return QuestionView{}, err
	}

	seen := map[string]struct{}{grading.Normalize(correct): {}}
	var pool []string
	for _, t := range texts {
		t = strings.TrimSpace(t)
		key := grading.Normalize(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		pool = append(pool, t)
	}

	r.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > maxDistractors {
		pool = pool[:maxDistractors]
	}

	options := append(pool, correct)
	r.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return QuestionView{ID: q.ID, Prompt: q.Prefecture, Options: options, Answer: correct}, nil
}
