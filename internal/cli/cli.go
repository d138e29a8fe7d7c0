// Package cli implements the quizmark command line.
package cli

import (
	"fmt"
	"io"

	"github.com/kk-code-lab/quizmark/internal/config"
	"github.com/kk-code-lab/quizmark/internal/logging"
	"github.com/kk-code-lab/quizmark/internal/markup"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  quizmark <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-11s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"quizmark <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands []*Command

func init() {
	commands = []*Command{
		command("take", "Answer a quiz in the terminal", []string{
			"quizmark take [--answers <file>] [--save <file>] [--watch] <quiz.txt|->",
		}, runTake),
		command("print", "Print a quiz with its current answers", []string{
			"quizmark print [--answers <file>] [--no-color] [--width <n>] <quiz.txt|->",
		}, runPrint),
		command("parse", "Print the parsed document", []string{
			"quizmark parse [--format json|yaml] <quiz.txt|->",
		}, runParse),
		command("grade", "Grade an answers file", []string{
			"quizmark grade --answers <file> [--case-sensitive] [--format text|json] <quiz.txt|->",
		}, runGrade),
		command("serve", "Serve the markup preview API", []string{
			"quizmark serve [--addr <host:port>]",
		}, runServe),
		command("completion", "Print a shell completion script", []string{
			"quizmark completion [bash|zsh|fish|pwsh]",
		}, runCompletion),
	}
}

// loadConfig resolves configuration for a command. path may be empty.
func loadConfig(path string) (config.Config, error) {
	return config.Resolve(path)
}

func newParser(cfg config.Config) markup.Parser {
	return markup.NewParser(markup.Options{QuestionPrefix: cfg.Markup.QuestionPrefix})
}

func newLogger(w io.Writer, cfg config.Config) *logging.Logger {
	return logging.New(w, logging.Options{
		RollbarToken: cfg.Logging.RollbarToken,
		Environment:  cfg.Logging.Environment,
		CodeVersion:  Version,
		Verbose:      cfg.Logging.Verbose,
	})
}

// Version is set at build time with -ldflags.
var Version = "dev"
