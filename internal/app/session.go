package app

import (
	"context"

	"github.com/fpt/go-weis-cli/internal/infra"
	"github.com/fpt/go-weis-cli/pkg/convert"
	"github.com/fpt/go-weis-cli/pkg/interrogate"
	pkgLogger "github.com/fpt/go-weis-cli/pkg/logger"
	"github.com/fpt/go-weis-cli/pkg/question"
	"github.com/pkg/errors"
)

// Session runs question files: load, verify, then interrogate.
type Session struct {
	engine   *interrogate.Engine
	verifier *question.Verifier
	prompter interrogate.Prompter
	logger   *pkgLogger.Logger
}

// NewSession creates a session that asks through prompter. A nil logger
// uses the global default.
func NewSession(converter *convert.Converter, prompter interrogate.Prompter, logger *pkgLogger.Logger) *Session {
	if logger == nil {
		logger = pkgLogger.Default
	}
	return &Session{
		engine:   interrogate.NewEngine(converter).WithLogger(logger),
		verifier: question.NewVerifier(converter),
		prompter: prompter,
		logger:   logger.WithComponent("session"),
	}
}

// Load reads and verifies a question file without asking anything.
func (s *Session) Load(path string) (*infra.QuestionFile, error) {
	file, err := infra.LoadQuestionFile(path)
	if err != nil {
		return nil, err
	}
	if err := s.verifier.Verify(file.Questions); err != nil {
		return nil, errors.Wrapf(err, "invalid question file %s", path)
	}
	s.logger.Debug("Question file loaded", "path", path, "questions", len(file.Questions))
	return file, nil
}

// Run loads the question file at path and asks its questions. The file is
// read again on every call.
func (s *Session) Run(ctx context.Context, path string) (*interrogate.Answers, error) {
	file, err := s.Load(path)
	if err != nil {
		return nil, err
	}

	answers, err := s.engine.Interrogate(ctx, file.Questions, s.prompter)
	if err != nil {
		return nil, errors.Wrapf(err, "interrogation of %s failed", path)
	}
	s.logger.Debug("Session finished", "path", path, "answers", answers.Len())
	return answers, nil
}
