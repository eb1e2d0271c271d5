package quiz_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prefquiz/prefquiz/internal/grading"
	"github.com/prefquiz/prefquiz/internal/quiz"
)

// scriptPrompter answers each question with the next scripted picker.
type scriptPrompter struct {
	script     []func(quiz.QuestionView) int
	i          int
	saveFailed []int64
}

func (p *scriptPrompter) Ask(v quiz.QuestionView, remaining int) (int, error) {
	if p.i >= len(p.script) {
		return 0, fmt.Errorf("prompter script exhausted at question %d", v.ID)
	}
	pick := p.script[p.i]
	p.i++
	return pick(v), nil
}

func (p *scriptPrompter) Feedback(bool) {}

func (p *scriptPrompter) SaveFailed(id int64) { p.saveFailed = append(p.saveFailed, id) }

func pickCorrect(v quiz.QuestionView) int {
	for i, o := range v.Options {
		if grading.Equal(o, v.Answer) {
			return i + 1
		}
	}
	return 1
}

func pickWrong(v quiz.QuestionView) int {
	for i, o := range v.Options {
		if !grading.Equal(o, v.Answer) {
			return i + 1
		}
	}
	return 1
}

func repeat(pick func(quiz.QuestionView) int, n int) []func(quiz.QuestionView) int {
	out := make([]func(quiz.QuestionView) int, n)
	for i := range out {
		out[i] = pick
	}
	return out
}

func TestSessionAllThenRetry(t *testing.T) {
	ctx := context.Background()
	st := quiz.NewMemoryStore(corpus()...)
	repo := newRepo(st)

	// First pass: question 1 wrong, the rest right.
	p := &scriptPrompter{script: append(
		[]func(quiz.QuestionView) int{pickWrong},
		repeat(pickCorrect, 3)...,
	)}
	sum, err := quiz.NewSession("u1", st, repo, nil).Run(ctx, quiz.ModeAll, p)
	if err != nil {
		t.Fatalf("run all: %v", err)
	}
	if sum.Total != 4 || sum.Correct != 3 || sum.Incorrect != 1 {
		t.Fatalf("summary = %+v, want 4/3/1", sum)
	}

	ids, _ := quiz.QuestionsFor(ctx, st, "u1", quiz.ModeRetryIncorrect)
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("retry ids = %v, want [1]", ids)
	}

	// Retry pass: answer the missed question correctly.
	p = &scriptPrompter{script: repeat(pickCorrect, 1)}
	sum, err = quiz.NewSession("u1", st, repo, nil).Run(ctx, quiz.ModeRetryIncorrect, p)
	if err != nil {
		t.Fatalf("run retry: %v", err)
	}
	if sum.Total != 1 || sum.Correct != 1 {
		t.Fatalf("retry summary = %+v, want 1/1/0", sum)
	}

	// Nothing left to retry; the session is an empty no-op, not an error.
	sum, err = quiz.NewSession("u1", st, repo, nil).Run(ctx, quiz.ModeRetryIncorrect, &scriptPrompter{})
	if err != nil {
		t.Fatalf("run empty retry: %v", err)
	}
	if sum.Total != 0 {
		t.Fatalf("empty retry summary = %+v, want all zero", sum)
	}
}

func TestSessionRejectsOutOfRangeChoice(t *testing.T) {
	st := quiz.NewMemoryStore(corpus()...)
	repo := newRepo(st)

	p := &scriptPrompter{script: []func(quiz.QuestionView) int{
		func(quiz.QuestionView) int { return 99 },
	}}
	_, err := quiz.NewSession("u1", st, repo, nil).Run(context.Background(), quiz.ModeAll, p)
	if !errors.Is(err, quiz.ErrInvalidChoice) {
		t.Fatalf("err = %v, want ErrInvalidChoice", err)
	}
}

// failingStore drops every ledger write.
type failingStore struct {
	*quiz.MemoryStore
}

func (f *failingStore) RecordAnswer(ctx context.Context, rec quiz.AnswerRecord) error {
	return fmt.Errorf("%w: disk full", quiz.ErrLedgerWrite)
}

func TestSessionContinuesWhenLedgerWriteFails(t *testing.T) {
	st := &failingStore{quiz.NewMemoryStore(corpus()...)}
	repo := newRepo(st)

	p := &scriptPrompter{script: repeat(pickCorrect, 4)}
	sum, err := quiz.NewSession("u1", st, repo, nil).Run(context.Background(), quiz.ModeAll, p)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Total != 4 {
		t.Fatalf("summary = %+v, want the whole session answered", sum)
	}
	if len(p.saveFailed) != 4 {
		t.Fatalf("saveFailed = %v, want one notice per question", p.saveFailed)
	}
}
