// Copyright © 2024 reachql contributors. All rights reserved.

// Command reachql runs a query-language program (spec.md §6, §9)
// against a graph/grammar catalog and prints every `print` statement's
// result to stdout. Grounded on the teacher's trepl/repl.go: the same
// flag shape (`-trace`, with `-cache` in place of `-init`), the same gtrace/gologadapter
// bootstrap, and — with `-repl` — the same chzyer/readline +
// pterm-driven interactive loop, now evaluating one query-language
// statement per line instead of a TeREx s-expr.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/reachql/reachql/external"
	"github.com/reachql/reachql/lang"
)

func tracer() tracing.Trace {
	return tracing.Select("reachql.cmd")
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	cache := flag.String("cache", external.DefaultCacheDir(), "Graph catalog cache directory")
	dump := flag.String("dump", "", "Parse the named DOT file, print it back out, and exit")
	repl := flag.Bool("repl", false, "Start an interactive read-eval-print loop")
	lexerName := flag.String("lexer", "hand", "Tokenizer to use [hand|lexmachine]")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))

	if *dump != "" {
		runDump(*dump)
		return
	}

	loader := external.NewLoader(*cache)
	if *repl {
		runREPL(loader, *lexerName)
		return
	}

	args := flag.Args()
	if len(args) != 1 || !strings.HasSuffix(args[0], ".lll") {
		fmt.Fprintln(os.Stderr, "usage: reachql [-trace level] [-cache dir] [-dump file.dot] [-repl] [-lexer hand|lexmachine] <program.lll>")
		os.Exit(2)
	}
	if err := runFile(loader, args[0], *lexerName); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// parseWithLexer selects between the hand-written Lexer and the
// lexmachine-backed LMLexer (SPEC_FULL.md §2: lexmachine is selectable
// for REPL use, not just exercised by lang's own tests).
func parseWithLexer(src, lexerName string) (*lang.Program, error) {
	switch lexerName {
	case "", "hand":
		return lang.Parse(src)
	case "lexmachine":
		lm, err := lang.NewLMLexer(src)
		if err != nil {
			return nil, fmt.Errorf("reachql: compiling lexmachine scanner: %w", err)
		}
		return lang.ParseWith(lm)
	default:
		return nil, fmt.Errorf("reachql: unknown -lexer %q, want \"hand\" or \"lexmachine\"", lexerName)
	}
}

func runFile(loader external.Loader, path, lexerName string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reachql: reading %q: %w", path, err)
	}
	prog, err := parseWithLexer(string(src), lexerName)
	if err != nil {
		return err
	}
	interp := lang.NewInterp(loader, func(s string) { fmt.Println(s) })
	return interp.Run(prog)
}

func runDump(path string) {
	g, err := (external.DOTReader{}).LoadDOT(path)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(1)
	}
	fmt.Print(external.DOTWriter{}.WriteGraph(g))
}

// We use pterm for moderately fancy output, same palette as the teacher's TREPL.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func runREPL(loader external.Loader, lexerName string) {
	rl, err := readline.New("reachql> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer rl.Close()
	pterm.Info.Println("Welcome to reachql")
	tracer().Infof("Quit with <ctrl>D")

	interp := lang.NewInterp(loader, func(s string) { pterm.Info.Println(s) })
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		evalLine(interp, line, lexerName)
	}
	println("Good bye!")
}

func evalLine(interp *lang.Interp, line, lexerName string) {
	prog, err := parseWithLexer(line, lexerName)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if err := interp.Run(prog); err != nil {
		pterm.Error.Println(err.Error())
	}
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
