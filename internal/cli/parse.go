package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

func runParse(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs, configPath := newFlagSet(cmd, stderr)
		format := fs.String("format", "json", "Output format: json or yaml")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		path, ok := sourceArg(fs, stderr)
		if !ok {
			return ExitUsage
		}
		if *format != "json" && *format != "yaml" {
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

		if err := encode(stdout, *format, doc); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

func encode(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
