package interrogate

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ScriptedPrompter answers questions from a fixed list of input lines and
// writes everything it shows to an output writer. It backs non-interactive
// runs and tests.
type ScriptedPrompter struct {
	inputs  []string
	next    int
	out     io.Writer
	prompts []string
}

// NewScriptedPrompter creates a prompter that replays inputs. Output goes to
// out, or is discarded when out is nil.
func NewScriptedPrompter(inputs []string, out io.Writer) *ScriptedPrompter {
	if out == nil {
		out = io.Discard
	}
	return &ScriptedPrompter{inputs: inputs, out: out}
}

// NewScriptedPrompterFromReader reads all input lines from r.
func NewScriptedPrompterFromReader(r io.Reader, out io.Writer) (*ScriptedPrompter, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		inputs = append(inputs, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read scripted answers: %w", err)
	}
	return NewScriptedPrompter(inputs, out), nil
}

// Prompts returns every prompt that asked for input, in order.
func (p *ScriptedPrompter) Prompts() []string {
	return p.prompts
}

// Remaining returns the number of unread input lines.
func (p *ScriptedPrompter) Remaining() int {
	return len(p.inputs) - p.next
}

func (p *ScriptedPrompter) Display(text string) error {
	_, err := fmt.Fprintln(p.out, text)
	return err
}

// AskText returns the next input line with surrounding whitespace stripped.
func (p *ScriptedPrompter) AskText(ctx context.Context, prompt string) (string, error) {
	if err := p.show(prompt); err != nil {
		return "", err
	}
	line, err := p.read(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskChoice accepts either the text of a choice or its 1-based number.
func (p *ScriptedPrompter) AskChoice(ctx context.Context, prompt string, choices []string) (string, error) {
	if prompt != "" {
		if err := p.Display(prompt); err != nil {
			return "", err
		}
	}
	for i, choice := range choices {
		if _, err := fmt.Fprintf(p.out, "%d. %s\n", i+1, choice); err != nil {
			return "", err
		}
	}

	for {
		if err := p.show("? "); err != nil {
			return "", err
		}
		answer, err := p.read(ctx)
		if err != nil {
			return "", err
		}
		if choice, ok := matchChoice(answer, choices); ok {
			return choice, nil
		}
		if err := p.Display(fmt.Sprintf("You must choose one of [%s].", strings.Join(choices, ", "))); err != nil {
			return "", err
		}
	}
}

func (p *ScriptedPrompter) AskConfirm(ctx context.Context, prompt string) (bool, error) {
	for {
		if err := p.show(prompt); err != nil {
			return false, err
		}
		answer, err := p.read(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if err := p.Display(`Please enter "yes" or "no".`); err != nil {
			return false, err
		}
	}
}

func (p *ScriptedPrompter) show(prompt string) error {
	p.prompts = append(p.prompts, prompt)
	_, err := fmt.Fprintln(p.out, prompt)
	return err
}

func (p *ScriptedPrompter) read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.next >= len(p.inputs) {
		return "", ErrEndOfInput
	}
	line := p.inputs[p.next]
	p.next++
	return line, nil
}

func matchChoice(answer string, choices []string) (string, bool) {
	answer = strings.TrimSpace(answer)
	for _, choice := range choices {
		if choice == answer {
			return choice, true
		}
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1], true
	}
	return "", false
}
