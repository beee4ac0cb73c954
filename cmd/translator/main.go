// Command translator renders a program description as C source.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"goa.design/clue/log"

	"github.com/lightdiscord/translator"
)

// config holds the parsed command line.
type config struct {
	input       string   // Description path, "-" for stdin
	output      string   // Output path, stdout if empty
	includes    []string // Extra headers
	autoInclude bool     // Add stdio.h when the program reads or writes
	validate    bool     // Fail on validation errors
	indent      string   // Indentation unit
	noParens    bool     // Disable operand parentheses
	noCustom    bool     // Reject custom instructions
	debug       bool     // Enable debug logs
	format      string   // Log format
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	// Setup logger.
	format := log.FormatJSON
	switch cfg.format {
	case "terminal":
		format = log.FormatTerminal
	case "json":
	default:
		if log.IsTerminal() {
			format = log.FormatTerminal
		}
	}
	ctx := log.Context(context.Background(), log.WithFormat(format), log.WithOutput(os.Stderr))
	if cfg.debug {
		ctx = log.Context(ctx, log.WithDebug())
		log.Debugf(ctx, "debug logs enabled")
	}

	if err := run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		log.Errorf(ctx, err, "translation failed")
		os.Exit(1)
	}
}

// parseFlags parses the command line into a config.
func parseFlags(args []string, stderr io.Writer) (config, error) {
	var (
		cfg      config
		includes stringList
	)
	fs := flag.NewFlagSet("translator", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.output, "o", "", "Output file (default stdout)")
	fs.Var(&includes, "include", "Header to #include (repeatable)")
	fs.BoolVar(&cfg.autoInclude, "auto-include", false, "Include stdio.h when the program uses readln/writeln")
	fs.BoolVar(&cfg.validate, "validate", false, "Validate the program and fail on errors")
	fs.StringVar(&cfg.indent, "indent", "\t", "Indentation unit")
	fs.BoolVar(&cfg.noParens, "no-parens", false, "Do not parenthesize compound operands")
	fs.BoolVar(&cfg.noCustom, "no-custom", false, "Reject custom raw-text instructions")
	fs.BoolVar(&cfg.debug, "debug", false, "Enable debug logs")
	fs.StringVar(&cfg.format, "format", "", "Log format (terminal or json, default by terminal detection)")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	switch fs.NArg() {
	case 0:
		cfg.input = "-"
	case 1:
		cfg.input = fs.Arg(0)
	default:
		fmt.Fprintln(stderr, "usage: translator [flags] [file.yaml]")
		return config{}, errors.New("too many arguments")
	}
	cfg.includes = includes

	return cfg, nil
}

// run decodes, validates and renders one program description.
func run(ctx context.Context, cfg config, stdin io.Reader, stdout io.Writer) error {
	ids := &translator.Allocator{}
	dopt := &translator.DecodeOptions{Allocator: ids, DisallowCustom: cfg.noCustom}

	var (
		g   *translator.Graph
		err error
	)
	if cfg.input == "-" || cfg.input == "" {
		g, err = translator.Decode(stdin, dopt)
	} else {
		g, err = translator.DecodeFile(cfg.input, dopt)
	}
	if err != nil {
		return err
	}
	log.Debug(ctx, log.KV{K: "functions", V: len(g.Functions)}, log.KV{K: "identifiers", V: ids.Peek().Index()})

	if cfg.validate {
		issues := translator.Validate(g, nil)
		for _, is := range issues {
			log.Print(ctx, log.KV{K: "level", V: string(is.Level)}, log.KV{K: "code", V: is.Code},
				log.KV{K: "path", V: is.Path}, log.KV{K: "msg", V: is.Message})
		}
		if translator.HasErrors(issues) {
			return fmt.Errorf("validation failed with %d issue(s)", len(issues))
		}
	}

	fopt := &translator.FormatOptions{
		Indent:               cfg.indent,
		Includes:             cfg.includes,
		DisableOperandParens: cfg.noParens,
	}
	if cfg.autoInclude && g.UsesStdio() && !hasHeader(cfg.includes, "stdio.h") {
		fopt.Includes = append([]string{"stdio.h"}, cfg.includes...)
	}

	out, err := translator.Format(g, fopt)
	if err != nil {
		return err
	}
	out = append(out, '\n')

	if cfg.output == "" {
		_, err := stdout.Write(out)
		return err
	}
	if err := os.WriteFile(cfg.output, out, 0o600); err != nil {
		return err
	}
	log.Printf(ctx, "wrote %s", cfg.output)

	return nil
}

// hasHeader reports whether includes already names header.
func hasHeader(includes []string, header string) bool {
	for _, inc := range includes {
		if strings.Trim(strings.TrimSpace(inc), `<>"`) == header {
			return true
		}
	}

	return false
}
