package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/kk-code-lab/quizmark/internal/answers"
	"github.com/kk-code-lab/quizmark/internal/config"
	"github.com/kk-code-lab/quizmark/internal/markup"
	"github.com/kk-code-lab/quizmark/internal/source"
)

// newFlagSet returns a flag set carrying the shared --config flag.
func newFlagSet(cmd *Command, stderr io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to quizmark.yaml")
	return fs, configPath
}

// sourceArg returns the single positional quiz path.
func sourceArg(fs *flag.FlagSet, stderr io.Writer) (string, bool) {
	switch {
	case fs.NArg() == 0:
		fmt.Fprintln(stderr, "Missing <quiz.txt>")
		return "", false
	case fs.NArg() > 1:
		fmt.Fprintln(stderr, "Too many arguments")
		return "", false
	}
	return fs.Arg(0), true
}

func loadDocument(path string, cfg config.Config) (markup.Document, error) {
	file, err := source.Load(path)
	if err != nil {
		return markup.Document{}, err
	}
	return newParser(cfg).ParseLines(file.Lines()), nil
}

// loadAnswers reads an answers file, or returns an empty state for "".
func loadAnswers(path string) (answers.State, error) {
	if path == "" {
		return answers.New(), nil
	}
	return answers.Load(path)
}
