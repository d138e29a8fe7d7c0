package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLoggerPrintsLevelAndArgs(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{})
	l.Error("grade failed", errors.New("boom"), Learner("u-1"), map[string]any{"doc": "abc"})

	out := buf.String()
	if !strings.Contains(out, "quizmark ERROR grade failed: boom map[doc:abc]") {
		t.Fatalf("unexpected output %q", out)
	}
	if strings.Contains(out, "u-1") {
		t.Fatalf("learner id must not be printed: %q", out)
	}
}

func TestDebugRequiresVerbose(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{}).Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be dropped, got %q", buf.String())
	}
	New(&buf, Options{Verbose: true}).Debug("shown")
	if !strings.Contains(buf.String(), "DEBUG shown") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}

func TestPrepareStripsLearner(t *testing.T) {
	l := &Logger{}
	err := errors.New("boom")
	args := l.prepare("msg", []any{Learner("a"), err, Learner("b")})
	if len(args) != 2 || args[0] != "msg" || args[1] != err {
		t.Fatalf("unexpected rollbar args %v", args)
	}
}
