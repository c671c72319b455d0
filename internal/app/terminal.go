package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fpt/go-weis-cli/internal/config"
	"github.com/fpt/go-weis-cli/pkg/interrogate"
	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
)

// ErrInterrupted is returned when the user presses Ctrl+C at a prompt.
var ErrInterrupted = errors.New("interrupted")

// TerminalPrompter asks questions on an interactive terminal: free text
// through readline, choices through a promptui selector and confirmations
// through a promptui yes/no prompt.
type TerminalPrompter struct {
	out      io.Writer
	settings config.PromptSettings
}

// NewTerminalPrompter creates a prompter bound to stdin/stdout.
func NewTerminalPrompter(settings config.PromptSettings) *TerminalPrompter {
	return &TerminalPrompter{out: os.Stdout, settings: settings}
}

func (p *TerminalPrompter) Display(text string) error {
	_, err := fmt.Fprintln(p.out, text)
	return err
}

// AskText reads one line. Surrounding whitespace is stripped.
func (p *TerminalPrompter) AskText(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            textPrompt(prompt),
		HistoryFile:       p.settings.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "",
		HistorySearchFold: true,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to initialize line editor")
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		return "", translateInputError(err)
	}
	return strings.TrimSpace(line), nil
}

func (p *TerminalPrompter) AskChoice(ctx context.Context, prompt string, choices []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	label := strings.TrimSpace(prompt)
	if label == "" {
		label = "Choose one"
	}

	selector := promptui.Select{
		Label: label,
		Items: choices,
		Size:  p.settings.SelectSize,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "▸ {{ . | cyan }}",
			Inactive: "  {{ . }}",
			Selected: "{{ \"✓\" | green }} {{ . }}",
		},
		Searcher: func(input string, index int) bool {
			choice := strings.ToLower(choices[index])
			return strings.Contains(choice, strings.ToLower(strings.TrimSpace(input)))
		},
	}

	_, result, err := selector.Run()
	if err != nil {
		return "", translateInputError(err)
	}
	return result, nil
}

func (p *TerminalPrompter) AskConfirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	confirm := promptui.Prompt{
		Label:     strings.TrimSpace(prompt),
		IsConfirm: true,
	}
	if p.settings.ConfirmDefault {
		confirm.Default = "y"
	}

	_, err := confirm.Run()
	if err == nil {
		return true, nil
	}
	if err == promptui.ErrAbort {
		return false, nil
	}
	return false, translateInputError(err)
}

// textPrompt leaves a space between the prompt and the cursor.
func textPrompt(prompt string) string {
	if prompt == "" || strings.HasSuffix(prompt, " ") {
		return prompt
	}
	return prompt + " "
}

func translateInputError(err error) error {
	switch {
	case err == io.EOF, err == promptui.ErrEOF:
		return interrogate.ErrEndOfInput
	case err == readline.ErrInterrupt, err == promptui.ErrInterrupt:
		return ErrInterrupted
	default:
		return errors.Wrap(err, "failed to read answer")
	}
}
