package quiz_test

import (
	"context"
	"testing"

	"github.com/prefquiz/prefquiz/internal/quiz"
)

func corpus() []quiz.Question {
	return []quiz.Question{
		{ID: 1, Prefecture: "東京都", Answer: "Tokyo"},
		{ID: 2, Prefecture: "大阪府", Answer: "Osaka"},
		{ID: 3, Prefecture: "京都府", Answer: "Kyoto"},
		{ID: 4, Prefecture: "愛知県", Answer: "Nagoya"},
	}
}

func record(t *testing.T, st quiz.Store, user string, q int64, sel string, ok bool) {
	t.Helper()
	err := st.RecordAnswer(context.Background(), quiz.AnswerRecord{
		UserID: user, QuestionID: q, Selected: sel, Correct: ok,
	})
	if err != nil {
		t.Fatalf("record (%s, %d): %v", user, q, err)
	}
}

func TestLedgerSingleRowPerPair(t *testing.T) {
	st := quiz.NewMemoryStore(corpus()...)

	record(t, st, "u1", 1, "Osaka", false)
	record(t, st, "u1", 1, "Kyoto", false)
	record(t, st, "u1", 1, "Tokyo", true)

	rec, ok := st.Answer("u1", 1)
	if !ok {
		t.Fatal("no ledger row for (u1, 1)")
	}
	if !rec.Correct || rec.Selected != "Tokyo" {
		t.Fatalf("ledger row = %+v, want latest attempt", rec)
	}
}

func TestLedgerLatestWrongAnswerVisible(t *testing.T) {
	st := quiz.NewMemoryStore(corpus()...)

	record(t, st, "u1", 1, "Osaka", false)
	record(t, st, "u1", 1, "Kyoto", false)

	rec, _ := st.Answer("u1", 1)
	if rec.Correct || rec.Selected != "Kyoto" {
		t.Fatalf("ledger row = %+v, want newest wrong answer", rec)
	}
}

func TestLedgerCorrectnessNeverRegressesOnCorrect(t *testing.T) {
	st := quiz.NewMemoryStore(corpus()...)

	record(t, st, "u1", 2, "Osaka", true)
	record(t, st, "u1", 2, "Osaka", true)

	rec, _ := st.Answer("u1", 2)
	if !rec.Correct {
		t.Fatal("correctness regressed after a repeated correct attempt")
	}
}

func TestSelectionAll(t *testing.T) {
	st := quiz.NewMemoryStore(corpus()...)

	ids, err := quiz.QuestionsFor(context.Background(), st, "u1", quiz.ModeAll)
	if err != nil {
		t.Fatalf("QuestionsFor: %v", err)
	}
	want := []int64{1, 2, 3, 4}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

// The retry set tracks exactly the pairs whose latest record is incorrect.
func TestSelectionRetryIncorrect(t *testing.T) {
	ctx := context.Background()
	st := quiz.NewMemoryStore(corpus()...)

	record(t, st, "u1", 1, "Osaka", false)
	record(t, st, "u1", 2, "Osaka", true)

	ids, err := quiz.QuestionsFor(ctx, st, "u1", quiz.ModeRetryIncorrect)
	if err != nil {
		t.Fatalf("QuestionsFor: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("retry ids = %v, want [1]", ids)
	}

	record(t, st, "u1", 1, "Tokyo", true)

	ids, err = quiz.QuestionsFor(ctx, st, "u1", quiz.ModeRetryIncorrect)
	if err != nil {
		t.Fatalf("QuestionsFor: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("retry ids = %v, want empty", ids)
	}
}

func TestSelectionRetryEmptyForNewUser(t *testing.T) {
	st := quiz.NewMemoryStore(corpus()...)

	ids, err := quiz.QuestionsFor(context.Background(), st, "fresh", quiz.ModeRetryIncorrect)
	if err != nil {
		t.Fatalf("QuestionsFor: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("retry ids = %v, want empty", ids)
	}
}

func TestSelectionUnknownMode(t *testing.T) {
	st := quiz.NewMemoryStore(corpus()...)
	if _, err := quiz.QuestionsFor(context.Background(), st, "u1", quiz.Mode("bogus")); err == nil {
		t.Fatal("unknown mode accepted")
	}
}
