package question

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned when the question tree does not have the
	// expected shape (a question is not a map, q: is a map, ...).
	ErrMalformed = errors.New("malformed question")

	// ErrInvalidType is returned when type: names an unsupported conversion.
	ErrInvalidType = errors.New("invalid type")

	// ErrInvalidRegex is returned when validate: is not a valid regular expression.
	ErrInvalidRegex = errors.New("invalid regex")

	// ErrInvalidRepeat is returned for repeat: values that cannot be honoured,
	// such as a negative count or an until-blank repeat on a choice question.
	ErrInvalidRepeat = errors.New("invalid repeat")
)

// Error locates a defect in the question tree.
type Error struct {
	Path   string // e.g. questions[2].q[0]
	Err    error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v %s", e.Path, e.Err, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(path string, err error, format string, args ...any) *Error {
	return &Error{Path: path, Err: err, Detail: fmt.Sprintf(format, args...)}
}
