package question

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type staticTypes map[string]bool

func (s staticTypes) Supports(name string) bool { return s[name] }

var builtinTypes = staticTypes{"int": true, "integer": true, "float": true, "regex": true, "regexp": true}

func TestParse_Tree(t *testing.T) {
	data := []any{
		map[string]any{"desc": "Welcome"},
		map[string]any{"q": "age?", "type": "int", "range": "0 <= x < 130", "target": "age"},
		map[string]any{
			"target": "address",
			"q": []any{
				map[string]any{"q": "street?", "target": "street"},
				map[any]any{"q": "zip?", "target": "zip", "validate": `^\d{5}$`},
			},
		},
		map[string]any{"q": "color?", "choices": []any{"red", "green", 3}, "target": "color"},
		map[string]any{"q": "name?", "repeat": 3, "target": "names"},
		map[string]any{"q": "tag?", "repeat": "Another?", "target": 7},
	}

	questions, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	expected := []Question{
		{Desc: "Welcome", Prompt: TextPrompt("")},
		{Prompt: TextPrompt("age?"), Type: "int", Range: "0 <= x < 130", Target: "age"},
		{
			Target: "address",
			Prompt: GroupPrompt([]Question{
				{Prompt: TextPrompt("street?"), Target: "street"},
				{Prompt: TextPrompt("zip?"), Target: "zip", Validate: `^\d{5}$`},
			}),
		},
		{Prompt: TextPrompt("color?"), Choices: []string{"red", "green", "3"}, Target: "color"},
		{Prompt: TextPrompt("name?"), Repeat: FixedRepeat(3), Target: "names"},
		{Prompt: TextPrompt("tag?"), Repeat: ConfirmRepeat("Another?"), Target: "7"},
	}

	if diff := cmp.Diff(expected, questions); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_SingleQuestion(t *testing.T) {
	questions, err := Parse(map[string]any{"q": "only?", "target": "only"})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(questions) != 1 || questions[0].Target != "only" {
		t.Errorf("Unexpected questions: %+v", questions)
	}
}

func TestParse_Malformed(t *testing.T) {
	testCases := []struct {
		name string
		data any
		path string
	}{
		{"nil tree", nil, "questions"},
		{"scalar tree", "hello", "questions"},
		{"question not a map", []any{"hello"}, "questions[0]"},
		{"q is a map", []any{map[string]any{"q": map[string]any{"a": 1}}}, "questions[0].q"},
		{"nested question not a map", []any{map[string]any{"q": []any{1}}}, "questions[0].q[0]"},
		{"choices not a list", []any{map[string]any{"choices": "a,b"}}, "questions[0].choices"},
		{"empty choices", []any{map[string]any{"choices": []any{}}}, "questions[0].choices"},
		{"target is a list", []any{map[string]any{"target": []any{"a"}}}, "questions[0].target"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.data)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("Expected ErrMalformed, got %v", err)
			}
			var qErr *Error
			if !errors.As(err, &qErr) {
				t.Fatalf("Expected *Error, got %T", err)
			}
			if qErr.Path != tc.path {
				t.Errorf("Expected path %q, got %q", tc.path, qErr.Path)
			}
		})
	}
}

func TestParseRepeat(t *testing.T) {
	testCases := []struct {
		name     string
		value    any
		expected Repeat
	}{
		{"absent", nil, NoRepeat()},
		{"false", false, UntilBlankRepeat()},
		{"int", 3, FixedRepeat(3)},
		{"zero", 0, FixedRepeat(0)},
		{"int64", int64(2), FixedRepeat(2)},
		{"json number", 4.0, FixedRepeat(4)},
		{"text", "Add another?", ConfirmRepeat("Add another?")},
		{"empty text", "", UntilBlankRepeat()},
		{"true", true, UntilBlankRepeat()},
		{"fraction", 1.5, UntilBlankRepeat()},
		{"map", map[string]any{}, UntilBlankRepeat()},
		{"huge unsigned", uint64(math.MaxUint64), FixedRepeat(math.MaxInt)},
		{"huge negative", -1e300, FixedRepeat(math.MinInt)},
		{"infinity", math.Inf(1), UntilBlankRepeat()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseRepeat(tc.value); got != tc.expected {
				t.Errorf("ParseRepeat(%#v) = %+v, expected %+v", tc.value, got, tc.expected)
			}
		})
	}
}

func TestParseRepeat_LargeCount(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("needs 64-bit int")
	}
	large := uint64(1) << 40
	for _, value := range []any{large, float64(large), int64(large)} {
		if got := ParseRepeat(value); got != FixedRepeat(int(large)) {
			t.Errorf("ParseRepeat(%#v) = %+v, expected a fixed count", value, got)
		}
	}
	// Beyond int32, as a JSON decoder produces it.
	jsonCount := 3e9
	if got := ParseRepeat(jsonCount); got != FixedRepeat(int(jsonCount)) {
		t.Errorf("ParseRepeat(3e9) = %+v, expected a fixed count", got)
	}
}

func TestParse_RejectsOversizedRepeat(t *testing.T) {
	for _, count := range []any{uint64(math.MaxUint64), 1e30, -1e30} {
		_, err := Parse([]any{map[string]any{"q": "a?", "repeat": count}})
		if !errors.Is(err, ErrInvalidRepeat) {
			t.Errorf("Expected ErrInvalidRepeat for repeat %v, got %v", count, err)
			continue
		}
		if !strings.Contains(err.Error(), "questions[0].repeat") {
			t.Errorf("Expected the repeat path in %q", err.Error())
		}
	}
}

func TestVerifier_Accepts(t *testing.T) {
	questions := []Question{
		{Prompt: TextPrompt("age?"), Type: "int", Range: "0 <= x"},
		{Prompt: TextPrompt("zip?"), Validate: `^\d+$`},
		{Prompt: TextPrompt("list?"), Repeat: UntilBlankRepeat(), Type: "float"},
		{Prompt: GroupPrompt([]Question{{Prompt: TextPrompt("inner?"), Type: "regexp"}}), Repeat: FixedRepeat(2)},
		{Desc: "just text"},
	}

	v := NewVerifier(builtinTypes)
	for i := 0; i < 2; i++ {
		if err := v.Verify(questions); err != nil {
			t.Fatalf("Verify pass %d returned error: %v", i+1, err)
		}
	}
	if questions[3].Prompt.Questions[0].Type != "regexp" {
		t.Error("Verify must not modify the questions")
	}
}

func TestVerifier_Rejects(t *testing.T) {
	testCases := []struct {
		name      string
		questions []Question
		err       error
		path      string
	}{
		{
			name:      "unknown type",
			questions: []Question{{Type: "bogus"}},
			err:       ErrInvalidType,
			path:      "questions[0]",
		},
		{
			name:      "bad regex",
			questions: []Question{{Prompt: TextPrompt("ok?")}, {Validate: "("}},
			err:       ErrInvalidRegex,
			path:      "questions[1]",
		},
		{
			name: "nested bad type",
			questions: []Question{{Prompt: GroupPrompt([]Question{
				{Prompt: TextPrompt("fine")},
				{Type: "date"},
			})}},
			err:  ErrInvalidType,
			path: "questions[0].q[1]",
		},
		{
			name:      "negative count",
			questions: []Question{{Repeat: FixedRepeat(-1)}},
			err:       ErrInvalidRepeat,
			path:      "questions[0]",
		},
		{
			name:      "until blank with choices",
			questions: []Question{{Choices: []string{"a"}, Repeat: UntilBlankRepeat()}},
			err:       ErrInvalidRepeat,
			path:      "questions[0]",
		},
		{
			name:      "until blank with sub-questions",
			questions: []Question{{Prompt: GroupPrompt([]Question{{}}), Repeat: UntilBlankRepeat()}},
			err:       ErrInvalidRepeat,
			path:      "questions[0]",
		},
	}

	v := NewVerifier(builtinTypes)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Verify(tc.questions)
			if !errors.Is(err, tc.err) {
				t.Fatalf("Expected %v, got %v", tc.err, err)
			}
			var qErr *Error
			if !errors.As(err, &qErr) {
				t.Fatalf("Expected *Error, got %T", err)
			}
			if qErr.Path != tc.path {
				t.Errorf("Expected path %q, got %q", tc.path, qErr.Path)
			}
		})
	}
}

func TestVerifier_FirstDefectWins(t *testing.T) {
	questions := []Question{{Type: "bogus", Validate: "("}}

	err := NewVerifier(builtinTypes).Verify(questions)
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("Expected the type defect to be reported first, got %v", err)
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("Expected message to name the type, got %q", err.Error())
	}
}

func TestSchema(t *testing.T) {
	schema := Schema([]string{"float", "int"})

	def, ok := schema.Definitions["FileQuestion"]
	if !ok {
		t.Fatalf("Expected FileQuestion definition, got %v", schema.Definitions)
	}
	for _, field := range []string{FieldDesc, FieldQ, FieldTarget, FieldChoices, FieldValidate, FieldType, FieldRange, FieldRepeat} {
		if _, ok := def.Properties.Get(field); !ok {
			t.Errorf("Expected property %q in schema", field)
		}
	}

	typeProp, _ := def.Properties.Get(FieldType)
	if len(typeProp.Enum) != 2 || typeProp.Enum[0] != "float" {
		t.Errorf("Expected type enum [float int], got %v", typeProp.Enum)
	}

	data, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("Failed to marshal schema: %v", err)
	}
	if !strings.Contains(string(data), questionRef) {
		t.Errorf("Expected schema to reference %s", questionRef)
	}
}
