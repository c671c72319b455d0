package question

import (
	"fmt"
	"regexp"
)

// TypeSet tells the verifier which type: names can be converted.
type TypeSet interface {
	Supports(typeName string) bool
}

// Verifier checks a question tree before any question is asked.
type Verifier struct {
	types TypeSet
}

// NewVerifier creates a verifier that accepts the type names in types.
func NewVerifier(types TypeSet) *Verifier {
	return &Verifier{types: types}
}

// Verify walks the tree depth-first and returns the first defect found.
// It does not modify the questions and may be called any number of times.
func (v *Verifier) Verify(questions []Question) error {
	return v.verifyList(questions, "questions")
}

func (v *Verifier) verifyList(questions []Question, path string) error {
	for i, q := range questions {
		if err := v.verifyQuestion(q, fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (v *Verifier) verifyQuestion(q Question, path string) error {
	if q.Type != "" && !v.types.Supports(q.Type) {
		return newError(path, ErrInvalidType, "%s", q.Type)
	}
	if q.Validate != "" {
		if _, err := regexp.Compile(q.Validate); err != nil {
			return newError(path, ErrInvalidRegex, "%s", q.Validate)
		}
	}
	if err := verifyRepeat(q, path); err != nil {
		return err
	}
	if q.Prompt.IsGroup() {
		return v.verifyList(q.Prompt.Questions, path+"."+FieldQ)
	}
	return nil
}

func verifyRepeat(q Question, path string) error {
	switch q.Repeat.Kind {
	case RepeatFixed:
		if q.Repeat.Count < 0 {
			return newError(path, ErrInvalidRepeat, "(negative count %d)", q.Repeat.Count)
		}
	case RepeatUntilBlank:
		// Only free-text answers can be blank.
		if q.HasChoices() {
			return newError(path, ErrInvalidRepeat, "(repeat until blank cannot be combined with choices)")
		}
		if q.Prompt.IsGroup() {
			return newError(path, ErrInvalidRepeat, "(repeat until blank cannot be combined with sub-questions)")
		}
	}
	return nil
}
