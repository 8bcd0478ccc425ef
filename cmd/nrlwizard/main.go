// Command nrlwizard walks the NRL catalog interactively: pick a sensor,
// then a datalogger, review the summary and build the combined response.
//
// Usage:
//
//	nrlwizard [-root dir] [-config file] [-log file]
//
// Keys: up/down (or k/j) move, enter selects, backspace/left/esc go back,
// q quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-nrl/catalog"
	"github.com/cwbudde/algo-nrl/internal/config"
	"github.com/cwbudde/algo-nrl/lookup"
	"github.com/cwbudde/algo-nrl/session"
)

func main() {
	root := flag.String("root", "", "NRL catalog root (overrides catalog.root)")
	cfgPath := flag.String("config", "", "config file (default $NRL_CONFIG or ~/.config/nrl/config.toml)")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	var (
		cfg config.Config
		err error
	)

	if *cfgPath != "" {
		cfg, err = config.LoadFile(*cfgPath)
	} else {
		cfg, err = config.Load()
	}

	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if *root != "" {
		cfg.Catalog.Root = *root
	}

	var logOut io.Writer = io.Discard

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("open log: %v", err)
		}
		defer f.Close()

		logOut = f
	}

	logger, err := cfg.Log.NewLogger(logOut)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	loader, err := catalog.NewCachedLoader(catalog.FileLoader{}, cfg.Catalog.CacheSize)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	sess, err := session.New(cfg.Catalog.Root, loader, lookup.NewStore(cfg.Catalog.Root, loader), session.WithLogger(logger))
	if err != nil {
		log.Fatalf("session: %v", err)
	}

	p := tea.NewProgram(newApp(context.Background(), sess, cfg.Curve), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		log.Fatalf("wizard: %v", err)
	}

	if a, ok := final.(*app); ok && a.result != nil {
		fmt.Println(a.renderResult())
	}
}
