package cli

import (
	"fmt"
	"io"

	"github.com/kk-code-lab/quizmark/internal/grade"
	"github.com/kk-code-lab/quizmark/internal/ui/printer"
)

func runGrade(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs, configPath := newFlagSet(cmd, stderr)
		answersPath := fs.String("answers", "", "Answers file to grade")
		caseSensitive := fs.Bool("case-sensitive", false, "Compare blanks case sensitively")
		format := fs.String("format", "text", "Output format: text or json")
		noColor := fs.Bool("no-color", false, "Disable colors")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		path, ok := sourceArg(fs, stderr)
		if !ok {
			return ExitUsage
		}
		if *answersPath == "" {
			fmt.Fprintln(stderr, "Missing --answers")
			return ExitUsage
		}
		if *format != "text" && *format != "json" {
			fmt.Fprintf(stderr, "Unknown format: %s\n", *format)
			return ExitUsage
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Config error: %v\n", err)
			return ExitError
		}
		doc, err := loadDocument(path, cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitError
		}
		state, err := loadAnswers(*answersPath)
		if err != nil {
			fmt.Fprintf(stderr, "Answers error: %v\n", err)
			return ExitError
		}

		policy := grade.Policy{CaseSensitive: *caseSensitive || cfg.Grading.CaseSensitive}
		report := grade.Grade(doc, state.Prune(doc), policy)
		if *format == "json" {
			err = encode(stdout, "json", report)
		} else {
			err = printer.PrintReport(stdout, report, printer.Options{NoColor: *noColor || cfg.Take.NoColor})
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
