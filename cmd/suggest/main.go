// Copyright 2025 The Suggest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the spelling suggestion server and CLI application.

suggest loads a Hunspell dictionary pair (.aff and .dic) and produces
ranked correction candidates for misspelled words. It can operate as a
MessagePack IPC server for integration with text editors, or as a CLI
application for testing and debugging.

Candidates come from a staged pipeline: recapitalization attempts, edit
permutations driven by the affix file's REP, MAP, KEY and TRY tables,
compound-aware retries, dashed-word recursion, and finally n-gram and
phonetic similarity scans over the dictionary. Every candidate is
validated against the dictionary before it is shown.

# Usage

Check words directly:

	suggest -aff en_US.aff -dic en_US.dic recieve alot

Run the interactive CLI:

	suggest -aff en_US.aff -dic en_US.dic -c

Start the MessagePack IPC server:

	suggest -aff en_US.aff -dic en_US.dic -s

# Configuration

Runtime configuration is managed through a TOML file holding the
dictionary paths and the server limits:

	[dict]
	aff_path = "en_US.aff"
	dic_path = "en_US.dic"

	[server]
	max_limit = 64
	max_word_len = 60

	[suggest]
	default_limit = 15

The config file is automatically created with defaults if it doesn't
exist. Flags override file values.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests are
processed synchronously with microsecond timing information included in
responses.

Send a suggestion request:

	{"id": "req1", "w": "recieve", "l": 10}

Receive ranked candidates with their generator kinds:

	{"id": "req1", "s": [{"w": "receive", "k": "replchars", "r": 1}], "c": 1, "ok": false, "t": 212}

# Command Line Flags

The following flags control application behavior:

	-aff string
	    Path to the .aff affix file (overrides config)
	-dic string
	    Path to the .dic word list (overrides config)
	-config string
	    Path to a custom config.toml
	-d  Enable debug mode with detailed logging
	-c  Run the interactive CLI loop
	-s  Run in MessagePack server mode
	-limit int
	    Number of suggestions to return
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/typefield/suggest/internal/cli"
	"github.com/typefield/suggest/pkg/aff"
	"github.com/typefield/suggest/pkg/config"
	"github.com/typefield/suggest/pkg/dic"
	"github.com/typefield/suggest/pkg/lookup"
	"github.com/typefield/suggest/pkg/server"
	"github.com/typefield/suggest/pkg/suggest"
)

const (
	Version = "0.3.0"
	AppName = "suggest"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires the packages together: config, dictionary, suggester, and
// either the server loop, the CLI loop, or one-shot argument checking.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	affPath := flag.String("aff", "", "Path to the .aff affix file")
	dicPath := flag.String("dic", "", "Path to the .dic word list")
	configPath := flag.String("config", "", "Path to a custom config.toml")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive CLI loop")
	serverMode := flag.Bool("s", false, "Run in MessagePack server mode")
	limit := flag.Int("limit", 0, "Number of suggestions to return")

	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", AppName, Version)
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config at: %s", config.GetActiveConfigPath(activePath))

	if *affPath != "" {
		cfg.Dict.AffPath = *affPath
	}
	if *dicPath != "" {
		cfg.Dict.DicPath = *dicPath
	}
	if *limit > 0 {
		cfg.Suggest.DefaultLimit = *limit
	}

	affix, err := aff.ParseFile(cfg.Dict.AffPath)
	if err != nil {
		log.Fatalf("Failed to load affix file: %v", err)
	}
	words, err := dic.LoadFile(cfg.Dict.DicPath, affix.FlagParser)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Debugf("Loaded %d dictionary entries", words.Len())

	lk := lookup.New(affix, words)
	suggester := suggest.New(affix, words, lk)

	switch {
	case *serverMode:
		srv := server.NewServer(suggester, lk, cfg)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server terminated: %v", err)
		}
	case *cliMode:
		handler := cli.NewInputHandler(suggester, lk, cfg.Suggest.DefaultLimit, cfg.Server.MaxWordLen)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI terminated: %v", err)
		}
	default:
		if flag.NArg() == 0 {
			fmt.Fprintln(os.Stderr, "no words given; use -c for interactive mode or -h for help")
			os.Exit(2)
		}
		handler := cli.NewInputHandler(suggester, lk, cfg.Suggest.DefaultLimit, cfg.Server.MaxWordLen)
		for _, word := range flag.Args() {
			handler.HandleWord(word)
		}
	}
}
