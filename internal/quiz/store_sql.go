package quiz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLStore reads the question corpus and maintains the answer ledger over a
// database/sql handle. Placeholders use $1 so sqlite and pgx share the same
// statements.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Question(ctx context.Context, id int64) (Question, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT question_id, prefecture, correct_answer FROM questions WHERE question_id=$1`, id)
	var q Question
	if err := row.Scan(&q.ID, &q.Prefecture, &q.Answer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, ErrQuestionNotFound
		}
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) QuestionIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question_id FROM questions ORDER BY question_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (s *SQLStore) AnswerTexts(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT correct_answer FROM questions ORDER BY question_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var texts []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		texts = append(texts, t)
	}
	return texts, rows.Err()
}

func (s *SQLStore) IncorrectQuestionIDs(ctx context.Context, userID string) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT question_id FROM user_answers WHERE user_id=$1 AND is_correct=FALSE ORDER BY question_id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

// RecordAnswer reconciles one attempt into the ledger: insert on first sight,
// update in place after that. The existence check and the write share a
// transaction so a failure never leaves a duplicate or a half-applied row.
func (s *SQLStore) RecordAnswer(ctx context.Context, rec AnswerRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerWrite, err)
	}
	defer tx.Rollback()

	var n int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_answers WHERE user_id=$1 AND question_id=$2`,
		rec.UserID, rec.QuestionID).Scan(&n)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerWrite, err)
	}

	if n > 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE user_answers SET selected_answer=$1, is_correct=$2 WHERE user_id=$3 AND question_id=$4`,
			rec.Selected, rec.Correct, rec.UserID, rec.QuestionID)
	} else {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO user_answers (user_id, question_id, selected_answer, is_correct) VALUES ($1,$2,$3,$4)`,
			rec.UserID, rec.QuestionID, rec.Selected, rec.Correct)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerWrite, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerWrite, err)
	}
	return nil
}

// Lookup returns the ledger row for a pair, if any.
func (s *SQLStore) Lookup(ctx context.Context, userID string, questionID int64) (AnswerRecord, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, question_id, selected_answer, is_correct FROM user_answers WHERE user_id=$1 AND question_id=$2`,
		userID, questionID)
	var rec AnswerRecord
	if err := row.Scan(&rec.UserID, &rec.QuestionID, &rec.Selected, &rec.Correct); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AnswerRecord{}, false, nil
		}
		return AnswerRecord{}, false, err
	}
	return rec, true, nil
}

func scanIDs(rows *sql.Rows) ([]int64, error) {
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
