package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prefquiz/prefquiz/internal/grading"
)

var ErrInvalidChoice = errors.New("choice out of range")

// Prompter is the terminal collaborator. It receives typed values only; the
// session never sees raw input.
type Prompter interface {
	// Ask presents one question and returns the learner's 1-based choice.
	Ask(view QuestionView, remaining int) (int, error)
	// Feedback reports the verdict for the answer just given.
	Feedback(correct bool)
	// SaveFailed tells the learner the result for a question was not saved.
	SaveFailed(questionID int64)
}

// Session drives one quiz run for one user. Identity lives here and is
// threaded through every call; there is no process-wide current user.
type Session struct {
	ID     string
	UserID string

	store Store
	repo  *Repository
	log   *zap.Logger
}

func NewSession(userID string, store Store, repo *Repository, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		ID:     uuid.NewString(),
		UserID: userID,
		store:  store,
		repo:   repo,
		log:    log,
	}
}

// Run presents every selected question in order, records each attempt, and
// returns the score summary. A ledger write failure is reported for that
// question and the session continues; the summary is never persisted.
func (s *Session) Run(ctx context.Context, mode Mode, p Prompter) (Summary, error) {
	ids, err := QuestionsFor(ctx, s.store, s.UserID, mode)
	if err != nil {
		return Summary{}, err
	}
	s.log.Info("session start",
		zap.String("session_id", s.ID),
		zap.String("user_id", s.UserID),
		zap.String("mode", string(mode)),
		zap.Int("questions", len(ids)))

	var sum Summary
	for i, id := range ids {
		view, err := s.repo.Fetch(ctx, id)
		if err != nil {
			if errors.Is(err, ErrQuestionNotFound) {
				s.log.Warn("question missing", zap.Int64("question_id", id))
				continue
			}
			return sum, err
		}

		choice, err := p.Ask(view, len(ids)-i)
		if err != nil {
			return sum, err
		}
		if choice < 1 || choice > len(view.Options) {
			return sum, fmt.Errorf("%w: %d not in [1,%d]", ErrInvalidChoice, choice, len(view.Options))
		}

		selected := view.Options[choice-1]
		correct := grading.Equal(selected, view.Answer)

		rec := AnswerRecord{UserID: s.UserID, QuestionID: id, Selected: selected, Correct: correct}
		if err := s.store.RecordAnswer(ctx, rec); err != nil {
			s.log.Error("record answer failed",
				zap.String("session_id", s.ID),
				zap.Int64("question_id", id),
				zap.Error(err))
			p.SaveFailed(id)
		}

		p.Feedback(correct)
		sum.Total++
		if correct {
			sum.Correct++
		} else {
			sum.Incorrect++
		}
	}

	s.log.Info("session end",
		zap.String("session_id", s.ID),
		zap.String("user_id", s.UserID),
		zap.Int("total", sum.Total),
		zap.Int("correct", sum.Correct),
		zap.Int("incorrect", sum.Incorrect))
	return sum, nil
}
