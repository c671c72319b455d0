package question

import (
	"fmt"
	"math"
)

// Field names of a question in a Weisfile.
const (
	FieldDesc     = "desc"
	FieldQ        = "q"
	FieldTarget   = "target"
	FieldChoices  = "choices"
	FieldValidate = "validate"
	FieldType     = "type"
	FieldRange    = "range"
	FieldRepeat   = "repeat"
)

// Parse decodes a generic question tree, as produced by a YAML or JSON
// decoder, into typed questions. The top level may be a list of questions or a
// single question. Unknown keys are ignored.
func Parse(data any) ([]Question, error) {
	const root = "questions"

	switch v := data.(type) {
	case []any:
		return parseList(v, root)
	case map[string]any, map[any]any:
		q, err := parseQuestion(v, root+"[0]")
		if err != nil {
			return nil, err
		}
		return []Question{q}, nil
	case nil:
		return nil, newError(root, ErrMalformed, "(empty question tree)")
	default:
		return nil, newError(root, ErrMalformed, "(expected a list of questions, got %T)", data)
	}
}

func parseList(items []any, path string) ([]Question, error) {
	questions := make([]Question, 0, len(items))
	for i, item := range items {
		q, err := parseQuestion(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func parseQuestion(item any, path string) (Question, error) {
	fields, ok := asMap(item)
	if !ok {
		return Question{}, newError(path, ErrMalformed, "(expected a map, got %T)", item)
	}

	var (
		q   Question
		err error
	)
	if q.Desc, err = scalarField(fields, FieldDesc, path); err != nil {
		return Question{}, err
	}
	if q.Target, err = scalarField(fields, FieldTarget, path); err != nil {
		return Question{}, err
	}
	if q.Validate, err = scalarField(fields, FieldValidate, path); err != nil {
		return Question{}, err
	}
	if q.Type, err = scalarField(fields, FieldType, path); err != nil {
		return Question{}, err
	}
	if q.Range, err = scalarField(fields, FieldRange, path); err != nil {
		return Question{}, err
	}
	if q.Choices, err = parseChoices(fields[FieldChoices], path+"."+FieldChoices); err != nil {
		return Question{}, err
	}
	if q.Prompt, err = parsePrompt(fields[FieldQ], path+"."+FieldQ); err != nil {
		return Question{}, err
	}
	if _, integral, fits := repeatCount(fields[FieldRepeat]); integral && !fits {
		return Question{}, newError(path+"."+FieldRepeat, ErrInvalidRepeat, "(count %v out of range)", fields[FieldRepeat])
	}
	q.Repeat = ParseRepeat(fields[FieldRepeat])
	return q, nil
}

func parsePrompt(value any, path string) (Prompt, error) {
	if list, ok := value.([]any); ok {
		questions, err := parseList(list, path)
		if err != nil {
			return Prompt{}, err
		}
		return GroupPrompt(questions), nil
	}
	text, ok := scalarText(value)
	if !ok {
		return Prompt{}, newError(path, ErrMalformed, "(expected a string or a list of questions, got %T)", value)
	}
	return TextPrompt(text), nil
}

func parseChoices(value any, path string) ([]string, error) {
	if value == nil {
		return nil, nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil, newError(path, ErrMalformed, "(expected a list, got %T)", value)
	}
	if len(list) == 0 {
		return nil, newError(path, ErrMalformed, "(must include at least one entry)")
	}
	choices := make([]string, 0, len(list))
	for i, item := range list {
		text, ok := scalarText(item)
		if !ok || item == nil {
			return nil, newError(fmt.Sprintf("%s[%d]", path, i), ErrMalformed, "(expected a string, got %T)", item)
		}
		choices = append(choices, text)
	}
	return choices, nil
}

// ParseRepeat maps a generic repeat: value onto its variant: nil asks once,
// a whole number asks that many times, a non-empty string is a confirmation
// prompt and any other value, false included, repeats until a blank answer.
// Whole numbers beyond the int range saturate; Parse rejects them.
func ParseRepeat(value any) Repeat {
	if value == nil {
		return NoRepeat()
	}
	if n, integral, fits := repeatCount(value); integral {
		if !fits {
			if isNegative(value) {
				return FixedRepeat(math.MinInt)
			}
			return FixedRepeat(math.MaxInt)
		}
		return FixedRepeat(n)
	}
	if text, ok := value.(string); ok && text != "" {
		return ConfirmRepeat(text)
	}
	return UntilBlankRepeat()
}

// repeatCount reports whether value is a whole number and whether it fits
// in an int.
func repeatCount(value any) (n int, integral, fits bool) {
	switch v := value.(type) {
	case int:
		return v, true, true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, true, false
		}
		return int(v), true, true
	case uint64:
		if v > math.MaxInt {
			return 0, true, false
		}
		return int(v), true, true
	case float64:
		if math.IsInf(v, 0) || v != math.Trunc(v) {
			return 0, false, false
		}
		if v < math.MinInt || v >= math.MaxInt {
			return 0, true, false
		}
		return int(v), true, true
	}
	return 0, false, false
}

func isNegative(value any) bool {
	switch v := value.(type) {
	case int64:
		return v < 0
	case float64:
		return v < 0
	}
	return false
}

func scalarField(fields map[string]any, name, path string) (string, error) {
	value := fields[name]
	text, ok := scalarText(value)
	if !ok {
		return "", newError(path+"."+name, ErrMalformed, "(expected a string, got %T)", value)
	}
	return text, nil
}

// scalarText renders YAML scalars as text; nil is the empty string.
func scalarText(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}

func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		fields := make(map[string]any, len(v))
		for key, item := range v {
			fields[fmt.Sprint(key)] = item
		}
		return fields, true
	default:
		return nil, false
	}
}
