// Package cli is the terminal layer: it renders prompts, parses raw input,
// and hands typed values to the quiz core. It owns all re-prompt loops.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/prefquiz/prefquiz/internal/auth"
	"github.com/prefquiz/prefquiz/internal/quiz"
)

// ErrAttemptsExhausted is fatal: the caller must end the process rather than
// keep prompting.
var ErrAttemptsExhausted = errors.New("attempt limit reached")

type Options struct {
	In          io.Reader
	Out         io.Writer
	Auth        *auth.Service
	Store       quiz.Store
	Repo        *quiz.Repository
	Log         *zap.Logger
	MaxAttempts int
}

type App struct {
	in          *bufio.Scanner
	out         io.Writer
	auth        *auth.Service
	store       quiz.Store
	repo        *quiz.Repository
	log         *zap.Logger
	maxAttempts int
}

func New(opts Options) *App {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	return &App{
		in:          bufio.NewScanner(opts.In),
		out:         opts.Out,
		auth:        opts.Auth,
		store:       opts.Store,
		repo:        opts.Repo,
		log:         opts.Log,
		maxAttempts: opts.MaxAttempts,
	}
}

// Run drives the whole interaction: entry, main menu, quiz sessions. It
// returns nil on a clean exit and ErrAttemptsExhausted when login or
// registration runs out of attempts.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to the prefectural capital quiz!")

	user, err := a.loginOrRegister(ctx)
	if err != nil {
		return err
	}

	for {
		fmt.Fprintln(a.out, "\nMenu:")
		fmt.Fprintln(a.out, "1. Answer all questions")
		fmt.Fprintln(a.out, "2. Retry the questions you got wrong")
		fmt.Fprintln(a.out, "3. Quit")
		choice, err := a.readIntInRange(1, 3, "Select: ")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = a.play(ctx, user, quiz.ModeAll)
		case 2:
			err = a.play(ctx, user, quiz.ModeRetryIncorrect)
		case 3:
			fmt.Fprintln(a.out, "Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) play(ctx context.Context, user auth.User, mode quiz.Mode) error {
	session := quiz.NewSession(user.ID, a.store, a.repo, a.log)
	sum, err := session.Run(ctx, mode, a)
	if err != nil {
		return err
	}
	if sum.Total == 0 {
		fmt.Fprintln(a.out, "Nothing to ask. Back to the menu.")
		return nil
	}
	fmt.Fprintln(a.out, "\n=== Results ===")
	fmt.Fprintf(a.out, "Questions: %d\n", sum.Total)
	fmt.Fprintf(a.out, "Correct:   %d\n", sum.Correct)
	fmt.Fprintf(a.out, "Wrong:     %d\n", sum.Incorrect)
	return nil
}

func (a *App) loginOrRegister(ctx context.Context) (auth.User, error) {
	fmt.Fprintln(a.out, "1: Log in  2: Register")
	choice, err := a.readIntInRange(1, 2, "Select: ")
	if err != nil {
		return auth.User{}, err
	}
	if choice == 1 {
		return a.login(ctx)
	}
	return a.register(ctx)
}

func (a *App) login(ctx context.Context) (auth.User, error) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		id, err := a.readLine("User ID: ")
		if err != nil {
			return auth.User{}, err
		}
		pw, err := a.readLine("Password: ")
		if err != nil {
			return auth.User{}, err
		}

		user, err := a.auth.Authenticate(ctx, id, pw)
		if err == nil {
			fmt.Fprintln(a.out, "Login successful!")
			a.log.Info("login", zap.String("user_id", user.ID))
			return user, nil
		}
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			return auth.User{}, err
		}
		fmt.Fprintf(a.out, "Login failed. %d attempt(s) remaining.\n", a.maxAttempts-attempt)
	}
	fmt.Fprintln(a.out, "Too many failed login attempts.")
	a.log.Warn("login attempts exhausted")
	return auth.User{}, ErrAttemptsExhausted
}

func (a *App) register(ctx context.Context) (auth.User, error) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		id, err := a.readLine("New user ID: ")
		if err != nil {
			return auth.User{}, err
		}
		pw, err := a.readLine("Password: ")
		if err != nil {
			return auth.User{}, err
		}

		user, err := a.auth.Register(ctx, id, pw)
		switch {
		case err == nil:
			fmt.Fprintln(a.out, "Registration complete!")
			a.log.Info("registered", zap.String("user_id", user.ID))
			return user, nil
		case errors.Is(err, auth.ErrInvalidFormat):
			fmt.Fprintln(a.out, "IDs and passwords are 1-8 characters: letters, digits, '.', '_' or '-'.")
		case errors.Is(err, auth.ErrDuplicateID):
			fmt.Fprintln(a.out, "That user ID is taken. Try another.")
		default:
			a.log.Error("register failed", zap.Error(err))
			fmt.Fprintln(a.out, "Registration failed. Try again.")
		}
	}
	fmt.Fprintln(a.out, "Too many failed registration attempts.")
	return auth.User{}, ErrAttemptsExhausted
}

// Ask implements quiz.Prompter.
func (a *App) Ask(view quiz.QuestionView, remaining int) (int, error) {
	fmt.Fprintf(a.out, "\n(%d question(s) left)\n", remaining)
	fmt.Fprintf(a.out, "What is the capital of %s?\n", view.Prompt)
	for i, opt := range view.Options {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, opt)
	}
	return a.readIntInRange(1, len(view.Options), "Enter the number: ")
}

// Feedback implements quiz.Prompter.
func (a *App) Feedback(correct bool) {
	if correct {
		fmt.Fprintln(a.out, "Correct!")
	} else {
		fmt.Fprintln(a.out, "Wrong...")
	}
}

// SaveFailed implements quiz.Prompter.
func (a *App) SaveFailed(questionID int64) {
	fmt.Fprintf(a.out, "Warning: the result for question %d was not saved.\n", questionID)
}

func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(a.in.Text()), nil
}

// readIntInRange re-prompts until the input parses and lies in [min, max].
func (a *App) readIntInRange(min, max int, prompt string) (int, error) {
	for {
		line, err := a.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= min && n <= max {
			return n, nil
		}
		fmt.Fprintf(a.out, "Invalid selection. Enter a number between %d and %d.\n", min, max)
	}
}
