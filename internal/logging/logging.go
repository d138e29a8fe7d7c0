// Package logging writes diagnostics to a standard logger and, when a
// Rollbar token is configured, forwards them to Rollbar.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
)

type Options struct {
	RollbarToken string
	Environment  string
	CodeVersion  string
	Verbose      bool
}

type Logger struct {
	std     *log.Logger
	rollbar bool
	verbose bool
}

// Learner tags a log call with the learner it concerns. It is reported as
// the Rollbar person and is not printed.
type Learner string

func New(w io.Writer, opts Options) *Logger {
	l := &Logger{
		std:     log.New(w, "quizmark ", log.LstdFlags|log.Lmsgprefix),
		verbose: opts.Verbose,
	}
	if opts.RollbarToken != "" {
		host, _ := os.Hostname()
		rollbar.SetToken(opts.RollbarToken)
		rollbar.SetEnvironment(opts.Environment)
		rollbar.SetServerHost(host)
		rollbar.SetCodeVersion(opts.CodeVersion)
		rollbar.SetStackTracer(errors.StackTracer)
		rollbar.SetEnabled(true)
		l.rollbar = true
	}
	return l
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, Options{})
}

// Writer exposes the underlying output, for collaborators such as gin that
// take an io.Writer.
func (l *Logger) Writer() io.Writer {
	return l.std.Writer()
}

func (l *Logger) Debug(msg string, args ...any) {
	if !l.verbose {
		return
	}
	l.print("DEBUG", msg, args)
}

func (l *Logger) Info(msg string, args ...any) {
	l.report(rollbar.Info, msg, args)
	l.print("INFO", msg, args)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.report(rollbar.Warning, msg, args)
	l.print("WARN", msg, args)
}

// Error accepts an error, a map[string]any of extras and a Learner among
// args, the way rollbar.Error does.
func (l *Logger) Error(msg string, args ...any) {
	l.report(rollbar.Error, msg, args)
	l.print("ERROR", msg, args)
}

// Close flushes queued Rollbar items.
func (l *Logger) Close() {
	if l.rollbar {
		rollbar.Wait()
	}
}

func (l *Logger) report(send func(...any), msg string, args []any) {
	if !l.rollbar {
		return
	}
	send(l.prepare(msg, args)...)
}

func (l *Logger) prepare(msg string, args []any) []any {
	out := make([]any, 0, len(args)+1)
	out = append(out, msg)
	var learner Learner
	for _, arg := range args {
		if id, ok := arg.(Learner); ok {
			if learner == "" {
				learner = id
			}
			continue
		}
		out = append(out, arg)
	}
	if learner != "" {
		rollbar.SetPerson(string(learner), "", "")
	} else {
		rollbar.ClearPerson()
	}
	return out
}

func (l *Logger) print(level, msg string, args []any) {
	line := level + " " + msg
	for _, arg := range args {
		switch v := arg.(type) {
		case Learner:
		case error:
			line += ": " + v.Error()
		default:
			line += fmt.Sprintf(" %+v", v)
		}
	}
	l.std.Println(line)
}
