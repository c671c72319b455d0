package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/fpt/go-weis-cli/internal/config"
	"github.com/fpt/go-weis-cli/pkg/interrogate"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RenderAnswers serializes answers in the given format, keeping key order.
// Regular expression answers are written as their pattern text.
func RenderAnswers(answers *interrogate.Answers, format string) ([]byte, error) {
	switch format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(jsonValue(answers), "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode answers as json")
		}
		return append(data, '\n'), nil
	case config.FormatYAML, "":
		node, err := yamlNode(answers)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(node); err != nil {
			return nil, errors.Wrap(err, "failed to encode answers as yaml")
		}
		if err := encoder.Close(); err != nil {
			return nil, errors.Wrap(err, "failed to encode answers as yaml")
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func yamlNode(value any) (*yaml.Node, error) {
	switch v := value.(type) {
	case *interrogate.Answers:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key}
			child, err := yamlNode(pair.Value)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, key, child)
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			child, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case *regexp.Regexp:
		return yamlNode(v.String())
	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, errors.Wrapf(err, "failed to encode answer %v", v)
		}
		return node, nil
	}
}

func jsonValue(value any) any {
	switch v := value.(type) {
	case *interrogate.Answers:
		out := interrogate.NewAnswers()
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, jsonValue(pair.Value))
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = jsonValue(item)
		}
		return out
	case *regexp.Regexp:
		return v.String()
	default:
		return v
	}
}
