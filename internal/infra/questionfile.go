package infra

import (
	"bytes"
	"io"
	"os"

	"github.com/fpt/go-weis-cli/pkg/question"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrEmptyQuestionFile is returned for files without any YAML document.
var ErrEmptyQuestionFile = errors.New("question file is empty")

// QuestionFile is a question file read from disk.
type QuestionFile struct {
	Path      string
	Questions []question.Question
}

// LoadQuestionFile reads a Weisfile (YAML, or JSON as a YAML subset) and
// decodes it into questions. The questions are not verified.
func LoadQuestionFile(path string) (*QuestionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read question file %s", path)
	}

	questions, err := LoadQuestionData(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load question file %s", path)
	}

	return &QuestionFile{Path: path, Questions: questions}, nil
}

// LoadQuestionData decodes a single YAML document into questions.
func LoadQuestionData(data []byte) ([]question.Question, error) {
	tree, err := DecodeTree(data)
	if err != nil {
		return nil, err
	}
	return question.Parse(tree)
}

// DecodeTree decodes a single YAML document into generic maps, lists and scalars.
func DecodeTree(data []byte) (any, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	var tree any
	if err := decoder.Decode(&tree); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyQuestionFile
		}
		return nil, errors.Wrap(err, "parse yaml")
	}

	var extra any
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return nil, errors.New("parse yaml: multiple documents are not supported")
		}
		return nil, errors.Wrap(err, "parse yaml")
	}

	if tree == nil {
		return nil, ErrEmptyQuestionFile
	}
	return tree, nil
}
