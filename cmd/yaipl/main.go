package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp"
	"github.com/mattn/go-isatty"
	"github.com/yaipl-lang/yaipl/internal/ast"
	"github.com/yaipl-lang/yaipl/internal/config"
	"github.com/yaipl-lang/yaipl/internal/diag"
	"github.com/yaipl-lang/yaipl/internal/eval"
	"github.com/yaipl-lang/yaipl/internal/lexer"
	"github.com/yaipl-lang/yaipl/internal/parser"
	"github.com/yaipl-lang/yaipl/internal/token"
	"golang.org/x/sync/errgroup"
)

type Option struct {
	Check   bool   `long:"check" description:"Parse only, do not evaluate"`
	AST     bool   `long:"ast" description:"Dump the syntax tree as JSON"`
	Debug   bool   `short:"d" long:"debug" description:"Dump the token stream and syntax tree while running"`
	Config  string `long:"config" description:"Config file path (default: .yaipl.yaml when present)"`
	NoColor bool   `long:"no-color" description:"Disable colored output"`
	Args    struct {
		Files []string `positional-arg-name:"FILE" required:"1"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opt Option
	flagParser := flags.NewParser(&opt, flags.Default)
	if _, err := flagParser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		flagParser.WriteHelp(os.Stdout)
		return 1
	}

	cfg, err := loadConfig(opt.Config)
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}
	setupColor(cfg, opt.NoColor)
	debug := opt.Debug || cfg.Debug

	// The front end is pure, so files run through it concurrently; debug
	// dumps and reporting stay in argument order.
	files := opt.Args.Files
	streams := make([]token.Stream, len(files))
	programs := make([]*ast.Program, len(files))
	frontendErrs := make([]error, len(files))

	var g errgroup.Group
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			streams[i], programs[i], frontendErrs[i] = frontend(file)
			return frontendErrs[i]
		})
	}
	failed := g.Wait() != nil

	for i, file := range files {
		if debug {
			if streams[i] != nil {
				pp.Println(streams[i])
			}
			if programs[i] != nil {
				pp.Println(programs[i])
			}
		}
		if frontendErrs[i] != nil {
			report(file, frontendErrs[i])
			continue
		}

		if opt.AST {
			if err := dumpJSON(os.Stdout, programs[i]); err != nil {
				log.Printf("failed to dump syntax tree: %v", err)
				return 1
			}
		}
		if opt.Check {
			continue
		}

		ret, err := eval.New().Evaluate(programs[i])
		if err != nil {
			report(file, err)
			failed = true
			continue
		}
		if ret != nil {
			if err := dumpJSON(os.Stdout, ret); err != nil {
				log.Printf("failed to dump result: %v", err)
				return 1
			}
		}
	}

	if failed {
		return 1
	}
	return 0
}

// frontend returns the token stream even when parsing fails so a debug run
// can still dump it.
func frontend(path string) (token.Stream, *ast.Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("os.ReadFile(%q): %w", path, err)
	}

	stream, err := lexer.Tokenize(string(source))
	if err != nil {
		return nil, nil, err
	}

	program, err := parser.New(stream).Parse()
	if err != nil {
		return stream, nil, err
	}
	return stream, program, nil
}

// report presents a stage failure. Positioned diagnostics are recovered from
// the aggregate by type and shown with their source location; everything
// else falls back to the aggregate's own rendering.
func report(file string, err error) {
	var rep diag.Reportable
	if !errors.As(err, &rep) {
		log.Printf("%s: %v", file, err)
		return
	}

	handled := false
	diag.Extract(rep, parser.Errors, func(tm *parser.TokenMismatch) {
		handled = true
		label := "token"
		if len(tm.Expected) > 1 {
			label = "one of tokens"
		}
		reportPositioned(file, tm.Pos, fmt.Sprintf("expected %s %s, found %s", label, tm.ExpectedNames(), tm.Found))
	})
	diag.Extract(rep, lexer.Errors, func(uc *lexer.UnexpectedCharacter) {
		handled = true
		reportPositioned(file, uc.Pos, fmt.Sprintf("unexpected character '%c'", uc.Char))
	})
	if handled {
		return
	}

	color.New(color.FgYellow, color.Bold).Fprintf(os.Stderr, "%s[%s]: ", rep.AggregateName(), rep.KindName())
	fmt.Fprintln(os.Stderr, rep.Render())
}

func reportPositioned(file string, pos token.Position, msg string) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "%s:%d:%d: ", file, pos.Line, pos.Column)
	fmt.Fprintln(os.Stderr, msg)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadDefault()
	}
	return config.Load(path)
}

func setupColor(cfg *config.Config, noColorFlag bool) {
	switch {
	case noColorFlag || cfg.Color == "never":
		color.NoColor = true
	case cfg.Color == "always":
		color.NoColor = false
	default:
		color.NoColor = !isatty.IsTerminal(os.Stderr.Fd())
	}
}

func dumpJSON(w io.Writer, v any) error {
	opts := []json.EncodeOptionFunc{json.DisableHTMLEscape()}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if !color.NoColor && isatty.IsTerminal(f.Fd()) {
			opts = append(opts, json.Colorize(json.DefaultColorScheme))
		}
	}

	b, err := json.MarshalIndentWithOption(v, "", "\t", opts...)
	if err != nil {
		return fmt.Errorf("json.MarshalIndentWithOption: %w", err)
	}

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
