package cli

import (
	"fmt"
	"io"

	"github.com/kk-code-lab/quizmark/internal/answers"
	"github.com/kk-code-lab/quizmark/internal/app"
	"github.com/kk-code-lab/quizmark/internal/grade"
	"github.com/kk-code-lab/quizmark/internal/ui/printer"
)

// runForm is a test seam for the interactive terminal session.
var runForm = func(path string, opts app.Options) (app.Result, error) {
	application, err := app.NewApplication(path, opts)
	if err != nil {
		return app.Result{}, err
	}
	defer application.Close()
	application.Run()
	return application.Result(), nil
}

func runTake(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs, configPath := newFlagSet(cmd, stderr)
		answersPath := fs.String("answers", "", "Answers file to start from")
		savePath := fs.String("save", "", "Write answers here on exit")
		watch := fs.Bool("watch", false, "Reload the quiz when the file changes")
		caseSensitive := fs.Bool("case-sensitive", false, "Compare blanks case sensitively")
		noColor := fs.Bool("no-color", false, "Disable colors in the report")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		path, ok := sourceArg(fs, stderr)
		if !ok {
			return ExitUsage
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Config error: %v\n", err)
			return ExitError
		}
		initial, err := loadAnswers(*answersPath)
		if err != nil {
			fmt.Fprintf(stderr, "Answers error: %v\n", err)
			return ExitError
		}

		logger := newLogger(io.Discard, cfg)
		defer logger.Close()
		result, err := runForm(path, app.Options{
			Parser:        newParser(cfg),
			Answers:       initial,
			Watch:         *watch || cfg.Take.Watch,
			WatchInterval: cfg.Take.WatchInterval,
			Logger:        logger,
		})
		if err != nil {
			logger.Error("take "+path, err)
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitError
		}

		if *savePath != "" {
			if err := answers.Save(*savePath, result.Answers); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return ExitError
			}
		}

		policy := grade.Policy{CaseSensitive: *caseSensitive || cfg.Grading.CaseSensitive}
		report := grade.Grade(result.Document, result.Answers, policy)
		if err := printer.PrintReport(stdout, report, printer.Options{NoColor: *noColor || cfg.Take.NoColor}); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
