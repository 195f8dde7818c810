package main

import (
	"context"
	"flag"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/gui"
	"github.com/tomz197/fireworks/internal/loop"
)

func main() {
	cfgPath := flag.String("config", config.GetEnv("FIREWORKS_CONFIG", ""), "YAML config file")
	track := flag.String("track", "", "backing track, a file path or http(s) URL (mp3 or wav)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		c, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatal("config", "err", err)
		}
		cfg = c
	}
	if *track != "" {
		cfg.Audio.Track = *track
		cfg.Audio.Enabled = true
	}

	logger, closer, err := cfg.Log.NewLogger(os.Stderr, "fireworks")
	if err != nil {
		log.Fatal("logger", "err", err)
	}
	defer closer.Close()

	sess, err := loop.NewSession(context.Background(), cfg, loop.SessionOptions{Logger: logger})
	if err != nil {
		logger.Fatal("session", "err", err)
	}
	defer sess.Close()

	if err := gui.Run(gui.New(sess), "Fireworks"); err != nil {
		logger.Error("window closed with error", "err", err)
	}
}
