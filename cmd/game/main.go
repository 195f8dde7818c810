package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/loop"
)

func main() {
	cfgPath := flag.String("config", config.GetEnv("FIREWORKS_CONFIG", ""), "YAML config file")
	track := flag.String("track", "", "backing track, a file path or http(s) URL (mp3 or wav)")
	difficulty := flag.String("difficulty", "", "EASY, NORMAL or HARD")
	writeConfig := flag.String("write-config", "", "write the effective config to this path and exit")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath, *track, *difficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *writeConfig != "" {
		if err := config.Save(*writeConfig, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "write config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// The terminal is the display, so logs only go to a file.
	logger, closer, err := cfg.Log.NewLogger(io.Discard, "fireworks")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(ctx, reader, os.Stdout, cfg, loop.Options{Logger: logger}); err != nil {
		logger.Error("game error", "err", err)
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path, track, difficulty string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	if track != "" {
		cfg.Audio.Track = track
		cfg.Audio.Enabled = true
	}
	if difficulty != "" {
		cfg.Difficulty = config.Difficulty(difficulty)
	}
	return cfg, cfg.Validate()
}
