package question

import (
	"github.com/invopop/jsonschema"
)

// FileQuestion documents the on-disk shape of a question for JSON Schema
// generation. Questions are decoded with Parse, not through this struct.
type FileQuestion struct {
	Desc     string      `json:"desc,omitempty" jsonschema_description:"Text shown before the question is asked."`
	Q        PromptField `json:"q,omitempty"`
	Target   string      `json:"target,omitempty" jsonschema_description:"Key of the answer in the result. Answers without a target are discarded."`
	Choices  []string    `json:"choices,omitempty" jsonschema:"minItems=1" jsonschema_description:"Fixed list of answers to select from."`
	Validate string      `json:"validate,omitempty" jsonschema:"format=regex" jsonschema_description:"Regular expression free-text answers must match."`
	Type     string      `json:"type,omitempty" jsonschema_description:"Conversion applied to the answer."`
	Range    string      `json:"range,omitempty" jsonschema:"example=0 <= x < 130" jsonschema_description:"Bounds for int and float answers."`
	Repeat   RepeatField `json:"repeat,omitempty"`
}

// PromptField is the q: field, either a prompt or nested questions.
type PromptField struct{}

func (PromptField) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "Prompt text, or a list of sub-questions whose answers form a nested mapping.",
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "array", Items: &jsonschema.Schema{Ref: questionRef}},
		},
	}
}

// RepeatField is the repeat: field.
type RepeatField struct{}

func (RepeatField) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "A count asks that many times, a text asks for confirmation to continue, any other value repeats until a blank answer.",
		OneOf: []*jsonschema.Schema{
			{Type: "integer", Minimum: "0"},
			{Type: "string"},
			{Type: "boolean"},
		},
	}
}

const questionRef = "#/$defs/FileQuestion"

// Schema returns the JSON Schema of a Weisfile. types restricts the type:
// field to the given conversion names when non-empty.
func Schema(types []string) *jsonschema.Schema {
	r := &jsonschema.Reflector{AllowAdditionalProperties: true}
	reflected := r.Reflect(&FileQuestion{})

	if def, ok := reflected.Definitions["FileQuestion"]; ok && len(types) > 0 {
		if prop, ok := def.Properties.Get(FieldType); ok {
			prop.Enum = make([]any, 0, len(types))
			for _, name := range types {
				prop.Enum = append(prop.Enum, name)
			}
		}
	}

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Weisfile",
		Description: "A list of questions, or a single question.",
		OneOf: []*jsonschema.Schema{
			{Type: "array", Items: &jsonschema.Schema{Ref: questionRef}},
			{Ref: questionRef},
		},
		Definitions: reflected.Definitions,
	}
}
