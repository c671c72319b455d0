package convert

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrUnknownType is returned when a conversion is requested for a type name
	// that has no registered converter.
	ErrUnknownType = errors.New("unknown type")

	// ErrConversionFailed matches every *ConversionError via errors.Is.
	ErrConversionFailed = errors.New("conversion failed")
)

// ConversionError reports that Data could not be converted to Type.
type ConversionError struct {
	Data string
	Type string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("can't convert '%s' to %s", e.Data, e.Type)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversionFailed
}

// Func converts the raw answer text to a typed value.
type Func func(data string) (any, error)

// Converter maps type names to conversion functions.
type Converter struct {
	funcs map[string]Func
}

// New returns a converter with the built-in types registered:
// int/integer, float and regex/regexp.
func New() *Converter {
	c := &Converter{funcs: make(map[string]Func)}
	c.Register("int", ToInt)
	c.Register("integer", ToInt)
	c.Register("float", ToFloat)
	c.Register("regex", ToRegexp)
	c.Register("regexp", ToRegexp)
	return c
}

// Register adds or replaces the conversion for name.
func (c *Converter) Register(name string, fn Func) {
	c.funcs[name] = fn
}

// Convert converts data to the named type.
func (c *Converter) Convert(data, typeName string) (any, error) {
	fn, ok := c.funcs[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeName)
	}
	value, err := fn(data)
	if err != nil {
		return nil, &ConversionError{Data: data, Type: typeName, Err: err}
	}
	return value, nil
}

// Supports reports whether typeName has a registered conversion.
func (c *Converter) Supports(typeName string) bool {
	_, ok := c.funcs[typeName]
	return ok
}

// SupportedTypes lists the registered type names in sorted order.
func (c *Converter) SupportedTypes() []string {
	names := make([]string, 0, len(c.funcs))
	for name := range c.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToInt parses an integer. Surrounding whitespace is ignored and base
// prefixes (0x, 0o, 0b) and underscores are accepted.
func ToInt(data string) (any, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(data), 0, strconv.IntSize)
	if err != nil {
		return nil, err
	}
	return int(n), nil
}

// ToFloat parses a finite floating point number. NaN and infinities are rejected.
func ToFloat(data string) (any, error) {
	text := strings.TrimSpace(data)
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &strconv.NumError{Func: "ParseFloat", Num: text, Err: strconv.ErrSyntax}
	}
	return f, nil
}

// ToRegexp compiles data as a regular expression.
func ToRegexp(data string) (any, error) {
	return regexp.Compile(data)
}
