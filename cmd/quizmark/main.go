package main

import (
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/quizmark/internal/cli"
)

func main() {
	// UTF-8 fallback keeps accented answers readable on minimal terminals.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
