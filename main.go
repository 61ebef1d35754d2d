package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"loglens/cmd/analyze"
	"loglens/cmd/batch"
	"loglens/cmd/records"
	"loglens/cmd/root"
	"loglens/cmd/tags"
)

func init() {
	// Load environment variables before any logging happens, then set the
	// global level so every logger created later inherits it.
	_ = godotenv.Load()
	logrus.SetLevel(parseLogLevel())

	root.Init()

	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(records.Cmd)
	root.Cmd.AddCommand(tags.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

func parseLogLevel() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		level = logrus.InfoLevel
	}
	return level
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
