package quiz

// Mode selects which question ids make up a session.
type Mode string

const (
	ModeAll            Mode = "all"
	ModeRetryIncorrect Mode = "retry-incorrect"
)

type Question struct {
	ID         int64
	Prefecture string
	Answer     string
}

// AnswerRecord is the ledger row for one (user, question) pair. At most one
// exists per pair; later attempts overwrite it in place.
type AnswerRecord struct {
	UserID     string
	QuestionID int64
	Selected   string
	Correct    bool
}

// QuestionView is one question rendered for presentation: the shuffled option
// list plus the correct answer by value, so shuffling never loses the mapping.
type QuestionView struct {
	ID      int64
	Prompt  string
	Options []string
	Answer  string
}

type Summary struct {
	Total     int
	Correct   int
	Incorrect int
}
