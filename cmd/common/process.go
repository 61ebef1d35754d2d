// Package common contains shared functionality for command handlers.
package common

import (
	"io"
	"os"

	"loglens/internal/config"
	"loglens/internal/correlator"
	"loglens/internal/extractor"
	"loglens/internal/logging"
	"loglens/internal/parsererror"
	"loglens/internal/report"
	"loglens/internal/session"
	"loglens/internal/store"
)

// NewSession builds an analysis session from the loaded configuration:
// identifier-field overrides, correlation window and logging all come from
// cfg.
func NewSession(cfg *config.Config, log logging.Logger) *session.Session {
	ext := extractor.New()
	if cfg.Extractor.FieldsFile != "" {
		fieldStore := store.NewFieldStore(cfg.Extractor.FieldsFile, log)
		overrides, err := fieldStore.Load()
		if err != nil {
			log.WithError(err).Warn("Ignoring unreadable field override file")
		} else if len(overrides.IdentifierFields) > 0 {
			ext = extractor.NewWithFields(overrides.IdentifierFields)
		}
	}

	engine := correlator.NewEngine(ext, cfg.Window(), log)
	return session.New(engine, log)
}

// LoadInputFile reads the input log file into the session, replacing any
// prior state. A file with no non-blank lines is rejected here; the core
// itself never fails on content.
func LoadInputFile(s *session.Session, path string, log logging.Logger) error {
	file, err := os.Open(path) // #nosec G304 -- input path from CLI flag
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close input file")
		}
	}()

	if err := s.Load(file); err != nil {
		return err
	}
	if len(s.Records()) == 0 {
		return &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "text log",
			Msg:            "no log lines found",
		}
	}
	return nil
}

// WriteOutput routes the write function to the output file, or stdout when
// no file was requested.
func WriteOutput(w *report.Writer, path, format string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	return w.WriteToFile(path, format, write)
}

// Delimiter returns the configured CSV delimiter as a rune.
func Delimiter(cfg *config.Config) rune {
	if cfg.CSV.Delimiter == "" {
		return ','
	}
	return []rune(cfg.CSV.Delimiter)[0]
}
