package quiz

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrLedgerWrite      = errors.New("answer not recorded")
)

type Store interface {
	Question(ctx context.Context, id int64) (Question, error)
	QuestionIDs(ctx context.Context) ([]int64, error)
	AnswerTexts(ctx context.Context) ([]string, error)
	IncorrectQuestionIDs(ctx context.Context, userID string) ([]int64, error)
	RecordAnswer(ctx context.Context, rec AnswerRecord) error
}

type answerKey struct {
	userID     string
	questionID int64
}

// MemoryStore keeps the corpus and ledger in maps. It backs tests and mirrors
// the reconciliation the SQL store does transactionally.
type MemoryStore struct {
	mu        sync.RWMutex
	questions []Question
	answers   map[answerKey]AnswerRecord
}

func NewMemoryStore(questions ...Question) *MemoryStore {
	return &MemoryStore{
		questions: questions,
		answers:   map[answerKey]AnswerRecord{},
	}
}

func (m *MemoryStore) Question(ctx context.Context, id int64) (Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, q := range m.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return Question{}, ErrQuestionNotFound
}

func (m *MemoryStore) QuestionIDs(ctx context.Context) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]int64, 0, len(m.questions))
	for _, q := range m.questions {
		ids = append(ids, q.ID)
	}
	return ids, nil
}

func (m *MemoryStore) AnswerTexts(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	texts := make([]string, 0, len(m.questions))
	for _, q := range m.questions {
		texts = append(texts, q.Answer)
	}
	return texts, nil
}

func (m *MemoryStore) IncorrectQuestionIDs(ctx context.Context, userID string) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []int64
	for k, rec := range m.answers {
		if k.userID == userID && !rec.Correct {
			ids = append(ids, k.questionID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *MemoryStore) RecordAnswer(ctx context.Context, rec AnswerRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers[answerKey{rec.UserID, rec.QuestionID}] = rec
	return nil
}

// Answer exposes the ledger row for a pair, for inspection in tests.
func (m *MemoryStore) Answer(userID string, questionID int64) (AnswerRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.answers[answerKey{userID, questionID}]
	return rec, ok
}
