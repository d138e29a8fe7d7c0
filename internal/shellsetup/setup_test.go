package shellsetup

import (
	"bytes"
	"strings"
	"testing"
)

func TestDetectShellInternal(t *testing.T) {
	tests := []struct {
		name          string
		goos          string
		envShell      string
		envComspec    string
		parent        func() string
		expectedShell string
	}{
		{
			name:          "uses SHELL when set",
			goos:          "linux",
			envShell:      "/bin/zsh",
			expectedShell: "zsh",
		},
		{
			name:          "falls back to parent shell",
			goos:          "linux",
			parent:        func() string { return "/usr/bin/bash" },
			expectedShell: "bash",
		},
		{
			name:          "windows prefers COMSPEC",
			goos:          "windows",
			envComspec:    `C:\Windows\System32\cmd.exe`,
			expectedShell: "cmd",
		},
		{
			name:          "windows fallback",
			goos:          "windows",
			expectedShell: "pwsh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := func(key string) string {
				switch key {
				case "SHELL":
					return tt.envShell
				case "COMSPEC":
					return tt.envComspec
				default:
					return ""
				}
			}
			got := detectShellInternal(tt.goos, env, tt.parent)
			if got != tt.expectedShell {
				t.Fatalf("detectShellInternal() = %q, want %q", got, tt.expectedShell)
			}
		})
	}
}

var testCommands = []Command{
	{Name: "take", Summary: "Answer a quiz"},
	{Name: "grade", Summary: "Grade the learner's answers"},
}

func TestPrintCompletion(t *testing.T) {
	tests := []struct {
		shell string
		want  []string
	}{
		{"bash", []string{`compgen -W "take grade"`, "complete -o filenames -F _quizmark quizmark"}},
		{"/usr/bin/zsh", []string{"compadd -- take grade", "compdef _quizmark quizmark"}},
		{"fish", []string{`-a grade -d 'Grade the learner\'s answers'`, "complete -c quizmark -F"}},
		{"powershell.exe", []string{"-CommandName quizmark", "@('take', 'grade')"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var buf bytes.Buffer
			if err := PrintCompletion(&buf, tt.shell, Config{Commands: testCommands}); err != nil {
				t.Fatalf("print: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Fatalf("expected %q in:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestPrintCompletionUnsupportedShell(t *testing.T) {
	var buf bytes.Buffer
	err := PrintCompletion(&buf, "cmd", Config{Commands: testCommands})
	if err == nil || !strings.Contains(err.Error(), "cmd") {
		t.Fatalf("expected unsupported shell error, got %v", err)
	}
}

func TestPrintCompletionDetectsShell(t *testing.T) {
	t.Setenv("SHELL", "")
	var buf bytes.Buffer
	cfg := Config{Commands: testCommands, DetectParent: func() string { return "fish" }}
	if err := PrintCompletion(&buf, "", cfg); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "complete -c quizmark") {
		t.Fatalf("expected fish script, got:\n%s", buf.String())
	}
}
