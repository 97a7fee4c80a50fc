package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/redjex/Framer-Bot/internal/config"
	"github.com/redjex/Framer-Bot/internal/gesture"
	"github.com/redjex/Framer-Bot/internal/store"
	"github.com/redjex/Framer-Bot/internal/video"
)

// defaultClips are the stock animations shipped with the bot, used when a
// user has no custom binding.
var defaultClips = map[gesture.Label]string{
	gesture.Like:    "animation/like.webp",
	gesture.Dislike: "animation/dislike.webp",
	gesture.Heart:   "animation/heart.webp",
}

func main() {
	var (
		inPath      = flag.String("in", "", "input video path (required)")
		outPath     = flag.String("out", "", "output video path (required)")
		userID      = flag.Int64("user", 0, "user id for custom animations (0 = defaults)")
		dbPath      = flag.String("db", "", "sqlite database path (default: ~/.framerbot/framerbot.db)")
		fps         = flag.Float64("fps", 0, "override output fps (0 = input fps)")
		noWatermark = flag.Bool("no-watermark", false, "disable the watermark stamp")
	)
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	log := logrus.WithField("cmd", "framerbot")

	st, err := openStore(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("open store")
	}
	defer st.Close()

	paths, err := st.Animations(defaultClips).PathsFor(*userID)
	if err != nil {
		log.WithError(err).Fatal("resolve animation paths")
	}

	cfg := config.Default()

	opts := video.Options{
		AnimationPaths: paths,
		Watermark:      !*noWatermark,
		Config:         &cfg,
		FPS:            *fps,
	}

	if err := video.Process(*inPath, *outPath, opts); err != nil {
		// The pipeline may have left a truncated output behind; a failed
		// job should not leave a half-written file for the caller.
		if rmErr := os.Remove(*outPath); rmErr != nil && !os.IsNotExist(rmErr) {
			log.WithError(rmErr).Warn("remove partial output")
		}
		log.WithError(err).Fatal("processing failed")
	}
}

func openStore(dbPath string) (*store.Store, error) {
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir := filepath.Join(homeDir, ".framerbot")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		dbPath = filepath.Join(dir, "framerbot.db")
	}
	return store.New(dbPath)
}
