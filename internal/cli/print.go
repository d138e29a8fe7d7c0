package cli

import (
	"fmt"
	"io"

	"github.com/kk-code-lab/quizmark/internal/render"
	"github.com/kk-code-lab/quizmark/internal/ui/printer"
)

func runPrint(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs, configPath := newFlagSet(cmd, stderr)
		answersPath := fs.String("answers", "", "Answers file to show")
		noColor := fs.Bool("no-color", false, "Disable colors")
		width := fs.Int("width", 0, "Divider width")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		path, ok := sourceArg(fs, stderr)
		if !ok {
			return ExitUsage
		}
		if *width < 0 {
			fmt.Fprintln(stderr, "--width must not be negative")
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

		tree := render.Build(doc, state.Prune(doc))
		opts := printer.Options{NoColor: *noColor || cfg.Take.NoColor, Width: *width}
		if err := printer.Print(stdout, tree, opts); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
