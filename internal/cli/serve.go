package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/kk-code-lab/quizmark/internal/config"
	"github.com/kk-code-lab/quizmark/internal/event"
	"github.com/kk-code-lab/quizmark/internal/grade"
	"github.com/kk-code-lab/quizmark/internal/server"
)

// serveHTTP and dialEvents are test seams for the serve command.
var (
	serveHTTP  = server.Serve
	dialEvents = func(cfg config.EventsConfig) (event.Publisher, error) {
		return event.NewAMQPPublisher(cfg.URL, cfg.Exchange)
	}
)

func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs, configPath := newFlagSet(cmd, stderr)
		addr := fs.String("addr", "", "Address to listen on (overrides server.addr)")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Config error: %v\n", err)
			return ExitError
		}
		if *addr != "" {
			cfg.Server.Addr = *addr
		}

		logger := newLogger(stderr, cfg)
		defer logger.Close()

		var publisher event.Publisher = event.Nop{}
		if cfg.Events.Enabled() {
			publisher, err = dialEvents(cfg.Events)
			if err != nil {
				logger.Error("connect to event broker", err)
				return ExitError
			}
			defer publisher.Close()
		} else {
			logger.Info("events not configured, graded events will not be published")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(stdout, "Serving markup API at http://%s\n", cfg.Server.Addr)
		err = serveHTTP(ctx, server.Config{
			Addr:           cfg.Server.Addr,
			AllowOrigins:   cfg.Server.AllowOrigins,
			Mode:           cfg.Server.Mode,
			QuestionPrefix: cfg.Markup.QuestionPrefix,
			Policy:         grade.Policy{CaseSensitive: cfg.Grading.CaseSensitive},
		}, publisher, logger)
		if err != nil {
			logger.Error("server stopped", err)
			return ExitError
		}
		return ExitOK
	}
}
