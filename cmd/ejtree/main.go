// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program ejtree reads eJSON values and prints their tokens, their trees, or
// their evaluated values as JSON.
//
// Usage:
//
//	ejtree [flags] [file ...]
//
// With no files, ejtree reads standard input. Settings may be loaded from a
// HuJSON or YAML file with -config; flags given explicitly override them.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/creachadair/ejtree"
	"github.com/creachadair/ejtree/internal/config"
	"github.com/creachadair/ejtree/vcm"
	"golang.org/x/term"
)

var (
	configPath = flag.String("config", "", "Settings file (HuJSON, or YAML if .yaml/.yml)")
	maxDepth   = flag.Int("max-depth", 0, "Maximum nesting depth (0 means unlimited)")
	encoding   = flag.String("encoding", "utf8", "Input encoding: utf8, utf32be, utf32le")
	doEval     = flag.Bool("eval", false, "Evaluate values and print them as JSON")
	doTokens   = flag.Bool("tokens", false, "Print tokens instead of trees")
	indent     = flag.String("indent", "", "Indentation of output (default two spaces on a terminal)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file ...]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := settings()
	if err != nil {
		log.Fatalf("Settings: %v", err)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	if flag.NArg() == 0 {
		if err := process(w, os.Stdin, cfg); err != nil {
			log.Fatalf("<stdin>: %v", err)
		}
		return
	}
	for _, path := range flag.Args() {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("Open: %v", err)
		}
		err = process(w, f, cfg)
		f.Close()
		if err != nil {
			w.Flush()
			log.Fatalf("%s: %v", path, err)
		}
	}
}

// settings merges the settings file, if any, with the flags set on the
// command line.
func settings() (*config.Settings, error) {
	cfg := &config.Settings{Encoding: "utf8"}
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-depth":
			cfg.MaxDepth = *maxDepth
		case "encoding":
			cfg.Encoding = *encoding
		case "eval":
			cfg.Eval = *doEval
		case "tokens":
			cfg.Tokens = *doTokens
		case "indent":
			cfg.Indent = indent
		}
	})
	if cfg.Indent == nil {
		var ind string
		if term.IsTerminal(int(os.Stdout.Fd())) {
			ind = "  "
		}
		cfg.Indent = &ind
	}
	if cfg.Eval && cfg.Tokens {
		return nil, errors.New("-eval and -tokens are mutually exclusive")
	}
	return cfg, nil
}

func process(w io.Writer, r io.Reader, cfg *config.Settings) error {
	switch cfg.Encoding {
	case "utf32be":
		r = ejtree.UTF32Reader(r, true)
	case "utf32le":
		r = ejtree.UTF32Reader(r, false)
	case "", "utf8":
	default:
		return fmt.Errorf("unknown encoding %q", cfg.Encoding)
	}
	if cfg.Tokens {
		return printTokens(w, r, cfg.MaxDepth)
	}

	root, err := vcm.Parse(r, vcm.MaxDepth(cfg.MaxDepth))
	if err != nil {
		return err
	}
	if !cfg.Eval {
		_, err := fmt.Fprintln(w, root.EJSON(*cfg.Indent))
		return err
	}
	v, err := vcm.Eval(root)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(v, "", *cfg.Indent)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func printTokens(w io.Writer, r io.Reader, maxDepth int) error {
	s := ejtree.NewScanner(r)
	s.SetMaxDepth(maxDepth)
	for {
		err := s.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-8s %-22v %s\n", s.Location(), s.Token(), s.Text())
	}
}
