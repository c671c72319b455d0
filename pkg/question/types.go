// Package question models a Weisfile: a declarative tree of questions that
// an interrogation engine asks a user.
package question

// PromptKind distinguishes a plain prompt from a group of sub-questions.
type PromptKind int

const (
	// FreeText is a single prompt string (possibly empty).
	FreeText PromptKind = iota
	// SubGroup is a nested list of questions answered as a unit.
	SubGroup
)

// Prompt is the q: field of a question.
type Prompt struct {
	Kind      PromptKind
	Text      string
	Questions []Question
}

// TextPrompt returns a free-text prompt.
func TextPrompt(text string) Prompt {
	return Prompt{Kind: FreeText, Text: text}
}

// GroupPrompt returns a prompt that asks the given sub-questions.
func GroupPrompt(questions []Question) Prompt {
	return Prompt{Kind: SubGroup, Questions: questions}
}

// IsGroup reports whether the prompt is a sub-question group.
func (p Prompt) IsGroup() bool {
	return p.Kind == SubGroup
}

// RepeatKind selects how many times a question is asked.
type RepeatKind int

const (
	// RepeatNone asks once and yields a single value.
	RepeatNone RepeatKind = iota
	// RepeatFixed asks exactly Count times.
	RepeatFixed
	// RepeatConfirm asks once, then again for as long as the user confirms Prompt.
	RepeatConfirm
	// RepeatUntilBlank asks until the user enters an empty line.
	RepeatUntilBlank
)

func (k RepeatKind) String() string {
	switch k {
	case RepeatNone:
		return "none"
	case RepeatFixed:
		return "fixed"
	case RepeatConfirm:
		return "confirm"
	case RepeatUntilBlank:
		return "until-blank"
	default:
		return "unknown"
	}
}

// Repeat is the repeat: field of a question.
type Repeat struct {
	Kind   RepeatKind
	Count  int
	Prompt string
}

// NoRepeat asks a question once.
func NoRepeat() Repeat {
	return Repeat{Kind: RepeatNone}
}

// FixedRepeat asks a question n times and collects the answers in a list.
func FixedRepeat(n int) Repeat {
	return Repeat{Kind: RepeatFixed, Count: n}
}

// ConfirmRepeat asks again for as long as prompt is confirmed.
func ConfirmRepeat(prompt string) Repeat {
	return Repeat{Kind: RepeatConfirm, Prompt: prompt}
}

// UntilBlankRepeat asks again until a blank answer is given.
func UntilBlankRepeat() Repeat {
	return Repeat{Kind: RepeatUntilBlank}
}

// Question is a single node of the question tree. Empty strings mean the
// corresponding field was not given.
type Question struct {
	Desc     string
	Prompt   Prompt
	Target   string
	Choices  []string
	Validate string
	Type     string
	Range    string
	Repeat   Repeat
}

// HasTarget reports whether the answer is stored in the answer mapping.
func (q Question) HasTarget() bool {
	return q.Target != ""
}

// HasChoices reports whether the answer is selected from a fixed list.
func (q Question) HasChoices() bool {
	return len(q.Choices) > 0
}
