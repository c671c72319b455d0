package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/fpt/go-weis-cli/internal/app"
	"github.com/fpt/go-weis-cli/internal/config"
	"github.com/fpt/go-weis-cli/pkg/convert"
	"github.com/fpt/go-weis-cli/pkg/interrogate"
	pkgLogger "github.com/fpt/go-weis-cli/pkg/logger"
	"github.com/fpt/go-weis-cli/pkg/question"
	"golang.org/x/term"
)

// resolveStringFlag returns the non-empty value, preferring short flag over long flag
func resolveStringFlag(shortVal, longVal string) string {
	if shortVal != "" {
		return shortVal
	}
	return longVal
}

func printUsage() {
	fmt.Println("weis - ask the questions of a Weisfile and print the answers")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  weis [flags] <weisfile>")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  weis survey.yml                         # Interactive mode")
	fmt.Println("  weis -format json -o out.json survey.yml")
	fmt.Println("  weis -script answers.txt survey.yml     # Answers read line by line")
	fmt.Println("  printf 'Ann\\n42\\n' | weis survey.yml    # Answers read from stdin")
	fmt.Println("  weis -script answers.txt -expect expected.yml survey.yml")
	fmt.Println("  weis -verify survey.yml                 # Check the file without asking")
	fmt.Println("  weis -schema                            # Print the Weisfile JSON Schema")
	fmt.Println()
}

func main() {
	ctx := context.Background()

	// Define command line flags
	var settingsPath = flag.String("settings", "", "Path to settings file")
	var scriptPath = flag.String("script", "", "Read answers line by line from file ('-' for stdin)")
	var outputPath = flag.String("o", "", "Write answers to file instead of stdout")
	var format = flag.String("format", "", "Output format (yaml or json)")
	var expectPath = flag.String("expect", "", "Compare answers with file and fail on mismatch")
	var verifyOnly = flag.Bool("verify", false, "Verify the question file and exit")
	var printSchema = flag.Bool("schema", false, "Print the JSON Schema of the question file format and exit")
	var initSettings = flag.Bool("init-settings", false, "Write a default settings file and exit")
	var verbose = flag.Bool("v", false, "Enable verbose logging (debug level)")
	var verboseLong = flag.Bool("verbose", false, "Enable verbose logging (debug level)")
	var help = flag.Bool("h", false, "Show this help message")
	var helpLong = flag.Bool("help", false, "Show this help message")

	// Custom usage function
	flag.Usage = func() {
		printUsage()
		fmt.Println("Flags:")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *help || *helpLong {
		flag.Usage()
		return
	}

	converter := convert.New()

	if *printSchema {
		data, err := json.MarshalIndent(question.Schema(converter.SupportedTypes()), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Failed to encode schema: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	// Load settings
	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		pkgLogger.Default.WarnWithIcon("⚠️", "Failed to load settings, using defaults", "error", err)
		settings = config.GetDefaultSettings()
	}

	// Override log level to debug if verbose flag is set
	logLevel := settings.LogLevel
	if *verbose || *verboseLong {
		logLevel = string(pkgLogger.LogLevelDebug)
	}
	pkgLogger.SetGlobalLogLevel(pkgLogger.LogLevel(logLevel))
	logger := pkgLogger.NewLogger(pkgLogger.LogLevel(logLevel))
	logger.DebugWithIcon("📊", "Logging configured", "log_level", logLevel)

	if *initSettings {
		path := resolveStringFlag(*settingsPath, config.DefaultSettingsPath())
		if err := config.SaveSettings(path, config.GetDefaultSettings()); err != nil {
			logger.ErrorWithIcon("❌", "Failed to write settings", "path", path, "error", err)
			os.Exit(1)
		}
		return
	}

	// Override settings with command line arguments
	if *format != "" {
		settings.Output.Format = *format
	}
	if *outputPath != "" {
		settings.Output.Path = *outputPath
	}

	if err := config.ValidateSettings(settings); err != nil {
		logger.ErrorWithIcon("❌", "Settings validation failed", "error", err)
		os.Exit(2)
	}

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(2)
	}
	questionPath := args[0]

	if *verifyOnly {
		session := app.NewSession(converter, nil, logger)
		file, err := session.Load(questionPath)
		if err != nil {
			logger.ErrorWithIcon("❌", "Question file is invalid", "path", questionPath, "error", err)
			os.Exit(1)
		}
		logger.InfoWithIcon("✅", "Question file is valid", "path", file.Path, "questions", len(file.Questions))
		return
	}

	prompter, err := newPrompter(*scriptPath, settings)
	if err != nil {
		logger.ErrorWithIcon("❌", "Failed to prepare answers", "error", err)
		os.Exit(1)
	}

	session := app.NewSession(converter, prompter, logger)
	answers, err := session.Run(ctx, questionPath)
	if err != nil {
		logger.ErrorWithIcon("❌", "Interrogation failed", "path", questionPath, "error", err)
		os.Exit(1)
	}

	rendered, err := app.RenderAnswers(answers, settings.Output.Format)
	if err != nil {
		logger.ErrorWithIcon("❌", "Failed to render answers", "error", err)
		os.Exit(1)
	}

	if err := writeAnswers(settings.Output.Path, rendered); err != nil {
		logger.ErrorWithIcon("❌", "Failed to write answers", "path", settings.Output.Path, "error", err)
		os.Exit(1)
	}

	if *expectPath != "" {
		diff, err := app.CheckExpected(rendered, *expectPath)
		if err != nil {
			logger.ErrorWithIcon("❌", "Failed to compare answers", "error", err)
			os.Exit(1)
		}
		if diff != "" {
			fmt.Fprint(os.Stderr, diff)
			logger.ErrorWithIcon("❌", "Answers differ from expected", "expected", *expectPath)
			os.Exit(1)
		}
		logger.InfoWithIcon("✅", "Answers match expected", "expected", *expectPath)
	}
}

// newPrompter picks scripted answers when a script is given or stdin is not
// a terminal, and the interactive terminal prompter otherwise. Scripted runs
// echo prompts to stderr so stdout carries only the answers.
func newPrompter(scriptPath string, settings *config.Settings) (interrogate.Prompter, error) {
	switch {
	case scriptPath == "-":
		return interrogate.NewScriptedPrompterFromReader(os.Stdin, os.Stderr)
	case scriptPath != "":
		f, err := os.Open(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		return interrogate.NewScriptedPrompterFromReader(f, os.Stderr)
	case !term.IsTerminal(int(os.Stdin.Fd())):
		return interrogate.NewScriptedPrompterFromReader(os.Stdin, os.Stderr)
	default:
		return app.NewTerminalPrompter(settings.Prompt), nil
	}
}

func writeAnswers(path string, rendered []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(rendered)
		return err
	}
	return os.WriteFile(path, rendered, 0644)
}
