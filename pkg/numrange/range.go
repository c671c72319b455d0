// Package numrange checks numeric answers against bounds written as a
// mathematical inequality, e.g. "0 <= x < 130", "x <= 5" or "1.5 < x".
package numrange

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrInvalidRangeFormat is returned when a range description does not follow
// the "[min <|<=] x <|<= max" or "min <|<= x" grammar.
var ErrInvalidRangeFormat = errors.New("invalid range format")

// Variable is the placeholder that stands for the answer in a range description.
const Variable = "x"

const number = `[-+]?\d+(?:\.\d+)?`

var (
	upperPattern = regexp.MustCompile(`^(?:(` + number + `)\s*(<=?)\s*)?` + Variable + `\s*(<=?)\s*(` + number + `)$`)
	lowerPattern = regexp.MustCompile(`^(` + number + `)\s*(<=?)\s*` + Variable + `$`)
)

// Bound is one side of a range.
type Bound struct {
	Value     any // int or float64
	Inclusive bool
}

func (b Bound) String() string {
	switch v := b.Value.(type) {
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	default:
		return fmt.Sprint(v)
	}
}

func (b Bound) operator() string {
	if b.Inclusive {
		return "<="
	}
	return "<"
}

// Range is an immutable, parsed range description. It is safe for concurrent use.
type Range struct {
	Min *Bound
	Max *Bound

	intCheck   *vm.Program
	floatCheck *vm.Program
}

// Parse builds a Range from its textual description.
func Parse(text string) (*Range, error) {
	trimmed := strings.TrimSpace(text)

	r := &Range{}
	if m := upperPattern.FindStringSubmatch(trimmed); m != nil {
		if m[1] != "" {
			lower, err := newBound(m[1], m[2])
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRangeFormat, text, err)
			}
			r.Min = lower
		}
		upper, err := newBound(m[4], m[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRangeFormat, text, err)
		}
		r.Max = upper
	} else if m := lowerPattern.FindStringSubmatch(trimmed); m != nil {
		lower, err := newBound(m[1], m[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRangeFormat, text, err)
		}
		r.Min = lower
	} else {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRangeFormat, text)
	}

	if err := r.compile(); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRangeFormat, text, err)
	}
	return r, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level ranges.
func MustParse(text string) *Range {
	r, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return r
}

func newBound(literal, op string) (*Bound, error) {
	value, err := ParseNumber(literal)
	if err != nil {
		return nil, err
	}
	return &Bound{Value: value, Inclusive: op == "<="}, nil
}

// ParseNumber parses a literal as float64 when it contains a decimal point,
// otherwise as int.
func ParseNumber(literal string) (any, error) {
	if strings.Contains(literal, ".") {
		return strconv.ParseFloat(literal, 64)
	}
	return strconv.Atoi(literal)
}

// condition renders the range as a boolean expression over x.
func (r *Range) condition() string {
	var parts []string
	if r.Min != nil {
		parts = append(parts, fmt.Sprintf("%s %s %s", r.Min, r.Min.operator(), Variable))
	}
	if r.Max != nil {
		parts = append(parts, fmt.Sprintf("%s %s %s", Variable, r.Max.operator(), r.Max))
	}
	if len(parts) == 0 {
		return "true"
	}
	return strings.Join(parts, " && ")
}

func (r *Range) compile() error {
	cond := r.condition()

	intCheck, err := expr.Compile(cond, expr.Env(map[string]any{Variable: 0}), expr.AsBool())
	if err != nil {
		return err
	}
	floatCheck, err := expr.Compile(cond, expr.Env(map[string]any{Variable: 0.0}), expr.AsBool())
	if err != nil {
		return err
	}
	r.intCheck, r.floatCheck = intCheck, floatCheck
	return nil
}

// Includes reports whether value lies within the bounds. An absent bound never
// restricts. Values that are not numbers are never included.
func (r *Range) Includes(value any) bool {
	var (
		program *vm.Program
		x       any
	)
	switch v := value.(type) {
	case int:
		program, x = r.intCheck, v
	case int8:
		program, x = r.intCheck, int(v)
	case int16:
		program, x = r.intCheck, int(v)
	case int32:
		program, x = r.intCheck, int(v)
	case int64:
		program, x = r.intCheck, int(v)
	case uint8:
		program, x = r.intCheck, int(v)
	case uint16:
		program, x = r.intCheck, int(v)
	case uint32:
		program, x = r.intCheck, int(v)
	case float32:
		program, x = r.floatCheck, float64(v)
	case float64:
		program, x = r.floatCheck, v
	default:
		return false
	}

	out, err := expr.Run(program, map[string]any{Variable: x})
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}

// String renders the canonical form of the range, e.g. "0 <= x < 130".
// The result parses back into an equivalent Range.
func (r *Range) String() string {
	var b strings.Builder
	if r.Min != nil {
		b.WriteString(r.Min.String())
		b.WriteString(" ")
		b.WriteString(r.Min.operator())
		b.WriteString(" ")
	}
	b.WriteString(Variable)
	if r.Max != nil {
		b.WriteString(" ")
		b.WriteString(r.Max.operator())
		b.WriteString(" ")
		b.WriteString(r.Max.String())
	}
	return b.String()
}

var rangedTypes = map[string]bool{
	"int":     true,
	"integer": true,
	"float":   true,
}

// IsRangedType reports whether a range: constraint applies to answers converted
// to typeName.
func IsRangedType(typeName string) bool {
	return rangedTypes[typeName]
}
