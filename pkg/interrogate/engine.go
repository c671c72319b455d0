// Package interrogate asks the questions of a verified question tree through
// a Prompter and collects the answers.
package interrogate

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/fpt/go-weis-cli/pkg/convert"
	pkgLogger "github.com/fpt/go-weis-cli/pkg/logger"
	"github.com/fpt/go-weis-cli/pkg/numrange"
	"github.com/fpt/go-weis-cli/pkg/question"
	"github.com/google/uuid"
)

// Engine walks question trees. An Engine holds no per-session state and can
// run any number of interrogations, one after another or concurrently.
// WithLogger returns a new Engine rather than changing a shared one.
type Engine struct {
	converter *convert.Converter
	logger    *pkgLogger.Logger
}

// NewEngine creates an engine that converts typed answers with converter.
func NewEngine(converter *convert.Converter) *Engine {
	return &Engine{
		converter: converter,
		logger:    pkgLogger.NewComponentLogger("engine"),
	}
}

// WithLogger returns a copy of the engine that logs to logger. The receiver
// is left unchanged.
func (e *Engine) WithLogger(logger *pkgLogger.Logger) *Engine {
	clone := *e
	clone.logger = logger.WithComponent("engine")
	return &clone
}

// Interrogate asks questions in order and returns the answers keyed by target.
// The questions are expected to have passed question.Verifier. Invalid
// answers are re-asked; a prompter error or a malformed range aborts the
// session and no answers are returned.
func (e *Engine) Interrogate(ctx context.Context, questions []question.Question, prompter Prompter) (*Answers, error) {
	s := &session{
		ctx:       ctx,
		converter: e.converter,
		prompter:  prompter,
		log:       e.logger.WithSession(uuid.NewString()),
		patterns:  make(map[string]*regexp.Regexp),
		ranges:    make(map[string]*numrange.Range),
	}

	s.log.Debug("Interrogation started", "questions", len(questions))
	answers, err := s.ask(questions)
	if err != nil {
		s.log.Debug("Interrogation aborted", "error", err)
		return nil, err
	}
	s.log.Debug("Interrogation finished", "answers", answers.Len())
	return answers, nil
}

// session is the state of a single Interrogate call.
type session struct {
	ctx       context.Context
	converter *convert.Converter
	prompter  Prompter
	log       *pkgLogger.Logger

	patterns map[string]*regexp.Regexp
	ranges   map[string]*numrange.Range
}

func (s *session) ask(questions []question.Question) (*Answers, error) {
	answers := NewAnswers()
	for _, q := range questions {
		answer, err := s.doQuestion(q)
		if err != nil {
			return nil, err
		}
		if q.HasTarget() && answer != nil {
			answers.Set(q.Target, answer)
			s.log.Debug("Answer stored", "target", q.Target)
		}
	}
	return answers, nil
}

func (s *session) doQuestion(q question.Question) (any, error) {
	if q.Desc != "" {
		if err := s.prompter.Display(q.Desc); err != nil {
			return nil, err
		}
	}

	switch q.Repeat.Kind {
	case question.RepeatFixed:
		results := make([]any, 0, max(q.Repeat.Count, 0))
		for i := 0; i < q.Repeat.Count; i++ {
			answer, _, err := s.validInput(q, false)
			if err != nil {
				return nil, err
			}
			results = append(results, answer)
		}
		return results, nil

	case question.RepeatConfirm:
		answer, _, err := s.validInput(q, false)
		if err != nil {
			return nil, err
		}
		results := []any{answer}
		for {
			if err := s.ctx.Err(); err != nil {
				return nil, err
			}
			again, err := s.prompter.AskConfirm(s.ctx, q.Repeat.Prompt)
			if err != nil {
				return nil, err
			}
			if !again {
				return results, nil
			}
			answer, _, err := s.validInput(q, false)
			if err != nil {
				return nil, err
			}
			results = append(results, answer)
		}

	case question.RepeatUntilBlank:
		if q.HasChoices() || q.Prompt.IsGroup() {
			return nil, fmt.Errorf("%w: repeat until blank needs a free-text question", question.ErrInvalidRepeat)
		}
		results := []any{}
		for {
			answer, blank, err := s.validInput(q, true)
			if err != nil {
				return nil, err
			}
			if blank {
				return results, nil
			}
			results = append(results, answer)
		}

	default:
		answer, _, err := s.validInput(q, false)
		return answer, err
	}
}

// validInput asks q until an acceptable answer is given. With stopOnBlank an
// empty free-text line ends the question before validation and conversion,
// which is reported through blank.
func (s *session) validInput(q question.Question, stopOnBlank bool) (answer any, blank bool, err error) {
	if q.Prompt.IsGroup() {
		sub, err := s.ask(q.Prompt.Questions)
		if err != nil {
			return nil, false, err
		}
		return sub, false, nil
	}

	prompt := q.Prompt.Text
	for {
		if err := s.ctx.Err(); err != nil {
			return nil, false, err
		}

		var raw string
		if q.HasChoices() {
			raw, err = s.prompter.AskChoice(s.ctx, prompt, q.Choices)
			if err != nil {
				return nil, false, err
			}
		} else {
			raw, err = s.prompter.AskText(s.ctx, prompt)
			if err != nil {
				return nil, false, err
			}
			if stopOnBlank && raw == "" {
				return nil, true, nil
			}
			if q.Validate != "" {
				pattern, err := s.pattern(q.Validate)
				if err != nil {
					return nil, false, err
				}
				if !pattern.MatchString(raw) {
					if err := s.reject(q, "pattern", fmt.Sprintf("invalid input, must match /%s/", q.Validate)); err != nil {
						return nil, false, err
					}
					continue
				}
			}
		}

		if q.Type == "" {
			return raw, false, nil
		}

		converted, err := s.converter.Convert(raw, q.Type)
		if errors.Is(err, convert.ErrConversionFailed) {
			if err := s.reject(q, "type", fmt.Sprintf("invalid value for type %s", q.Type)); err != nil {
				return nil, false, err
			}
			continue
		}
		if err != nil {
			return nil, false, err
		}

		if !numrange.IsRangedType(q.Type) || q.Range == "" {
			return converted, false, nil
		}

		bounds, err := s.numRange(q.Range)
		if err != nil {
			return nil, false, err
		}
		if bounds.Includes(converted) {
			return converted, false, nil
		}
		if err := s.reject(q, "range", fmt.Sprintf("value out of range (%s)", bounds)); err != nil {
			return nil, false, err
		}
	}
}

// reject tells the user why an answer was not accepted.
func (s *session) reject(q question.Question, reason, message string) error {
	s.log.Debug("Answer rejected", "target", q.Target, "reason", reason)
	return s.prompter.Display(message)
}

func (s *session) pattern(expr string) (*regexp.Regexp, error) {
	if re, ok := s.patterns[expr]; ok {
		return re, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", question.ErrInvalidRegex, expr, err)
	}
	s.patterns[expr] = re
	return re, nil
}

func (s *session) numRange(text string) (*numrange.Range, error) {
	if r, ok := s.ranges[text]; ok {
		return r, nil
	}
	r, err := numrange.Parse(text)
	if err != nil {
		return nil, err
	}
	s.ranges[text] = r
	return r, nil
}
