package quiz

import (
	"context"
	"fmt"
)

// QuestionsFor returns the ordered ids one session should present. ModeAll is
// the whole corpus in corpus order; ModeRetryIncorrect is every id whose
// latest ledger row for this user is incorrect. An empty retry set is a valid
// outcome, not an error.
func QuestionsFor(ctx context.Context, store Store, userID string, mode Mode) ([]int64, error) {
	switch mode {
	case ModeAll:
		return store.QuestionIDs(ctx)
	case ModeRetryIncorrect:
		return store.IncorrectQuestionIDs(ctx, userID)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}
