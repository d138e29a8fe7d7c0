package cli

import (
	"fmt"
	"io"

	"github.com/kk-code-lab/quizmark/internal/shellsetup"
)

func runCompletion(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		if len(args) > 1 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}
		shell := ""
		if len(args) == 1 {
			shell = args[0]
		}

		cfg := shellsetup.Config{Program: "quizmark"}
		for _, c := range commands {
			cfg.Commands = append(cfg.Commands, shellsetup.Command{Name: c.Name, Summary: c.Summary})
		}
		if err := shellsetup.PrintCompletion(stdout, shell, cfg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
