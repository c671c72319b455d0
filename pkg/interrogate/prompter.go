package interrogate

import (
	"context"
	"errors"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrEndOfInput is returned by a Prompter when no more answers can be read.
// It aborts the interrogation.
var ErrEndOfInput = errors.New("end of input")

// Prompter performs all user-facing I/O for an interrogation.
type Prompter interface {
	// Display shows text without reading an answer.
	Display(text string) error
	// AskText reads one line of free text.
	AskText(ctx context.Context, prompt string) (string, error)
	// AskChoice shows prompt followed by choices and returns the selected choice.
	AskChoice(ctx context.Context, prompt string, choices []string) (string, error)
	// AskConfirm asks a yes/no question.
	AskConfirm(ctx context.Context, prompt string) (bool, error)
}

// Answers maps question targets to answers in the order they were first bound.
// Values are strings, converted values (int, float64, *regexp.Regexp), nested
// *Answers for sub-questions, or []any for repeated questions.
type Answers = orderedmap.OrderedMap[string, any]

// NewAnswers returns an empty answer mapping.
func NewAnswers() *Answers {
	return orderedmap.New[string, any]()
}
