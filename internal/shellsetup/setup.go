// Package shellsetup prints shell completion scripts for quizmark.
package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
)

type ParentShellFunc func() string

// Command is one completable subcommand.
type Command struct {
	Name    string
	Summary string
}

type Config struct {
	Program      string
	Commands     []Command
	DetectParent ParentShellFunc
}

// PrintCompletion writes the completion script for shellOverride, or for
// the detected shell when it is empty.
func PrintCompletion(w io.Writer, shellOverride string, cfg Config) error {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}
	program := cfg.Program
	if program == "" {
		program = "quizmark"
	}

	shell := normalizeShellName(shellOverride)
	if shell == "" {
		shell = detectShell(parent)
	}
	shell = canonicalShellName(shell)

	names := make([]string, 0, len(cfg.Commands))
	for _, cmd := range cfg.Commands {
		names = append(names, cmd.Name)
	}
	words := strings.Join(names, " ")
	fn := "_" + strings.ReplaceAll(program, "-", "_")

	switch shell {
	case "bash", "sh", "ksh":
		_, err := fmt.Fprintf(w, `%[1]s() {
    local cur=${COMP_WORDS[COMP_CWORD]}
    if [ "$COMP_CWORD" -eq 1 ]; then
        COMPREPLY=( $(compgen -W "%[2]s" -- "$cur") )
    else
        COMPREPLY=( $(compgen -f -- "$cur") )
    fi
}
complete -o filenames -F %[1]s %[3]s
`, fn, words, program)
		return err
	case "zsh":
		_, err := fmt.Fprintf(w, `%[1]s() {
    if (( CURRENT == 2 )); then
        compadd -- %[2]s
    else
        _files
    fi
}
compdef %[1]s %[3]s
`, fn, words, program)
		return err
	case "fish":
		for _, cmd := range cfg.Commands {
			if _, err := fmt.Fprintf(w, "complete -c %s -f -n __fish_use_subcommand -a %s -d %s\n",
				program, cmd.Name, fishQuote(cmd.Summary)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "complete -c %s -F -n 'not __fish_use_subcommand'\n", program)
		return err
	case "pwsh":
		quoted := make([]string, 0, len(names))
		for _, n := range names {
			quoted = append(quoted, "'"+n+"'")
		}
		_, err := fmt.Fprintf(w, `Register-ArgumentCompleter -Native -CommandName %s -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    if ($commandAst.CommandElements.Count -gt 2) { return }
    @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_)
    }
}
`, program, strings.Join(quoted, ", "))
		return err
	default:
		return fmt.Errorf("completion is not available for %s", shell)
	}
}

func fishQuote(s string) string {
	return "'" + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), "'", `\'`) + "'"
}

func detectShell(parent ParentShellFunc) string {
	return detectShellInternal(runtime.GOOS, os.Getenv, parent)
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := canonicalShellName(normalizeShellName(parent())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		if shell := canonicalShellName(normalizeShellName(getenv("COMSPEC"))); shell != "" {
			switch shell {
			case "pwsh", "cmd":
				return shell
			}
		}
		return "pwsh"
	}

	return "bash"
}

func canonicalShellName(name string) string {
	switch name {
	case "powershell":
		return "pwsh"
	default:
		return name
	}
}

func normalizeShellName(value string) string {
	value = extractExecutable(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	value = strings.Trim(value, `"'`)
	value = strings.ReplaceAll(value, "\\", "/")
	base := strings.ToLower(path.Base(value))
	base = strings.TrimSuffix(base, ".exe")
	return strings.TrimSpace(base)
}

func extractExecutable(value string) string {
	if value == "" {
		return ""
	}
	for _, q := range []string{`"`, "'"} {
		if rest, ok := strings.CutPrefix(value, q); ok {
			if idx := strings.Index(rest, q); idx >= 0 {
				return rest[:idx]
			}
			return rest
		}
	}
	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}
	return value
}
