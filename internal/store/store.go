// Package store loads and saves user overrides for the identifier-field
// allow-list from a YAML file, so deployments can correlate on fields the
// built-in list does not know about.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"loglens/internal/logging"
)

// Overrides is the YAML document shape of a field-override file.
type Overrides struct {
	// IdentifierFields replaces the default structured-field allow-list
	// when non-empty.
	IdentifierFields []string `yaml:"identifier_fields"`
}

// FieldStore manages loading and saving of identifier-field overrides.
type FieldStore struct {
	FilePath string
	logger   logging.Logger
}

// NewFieldStore creates a store for the given override file path.
func NewFieldStore(path string, logger logging.Logger) *FieldStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &FieldStore{FilePath: path, logger: logger}
}

// FindConfigFile resolves a relative override filename against the standard
// locations: the working directory, then ./config, then ./.loglens.
func FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join(".loglens", filename),
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc, nil
		}
	}
	return "", os.ErrNotExist
}

// Load reads the override file. A missing file is not an error: it returns
// an empty Overrides so the built-in defaults apply.
func (s *FieldStore) Load() (Overrides, error) {
	var overrides Overrides

	path, err := FindConfigFile(s.FilePath)
	if err != nil {
		s.logger.Debug("No field override file found, using defaults",
			logging.Field{Key: logging.FieldFile, Value: s.FilePath})
		return overrides, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path resolved from config
	if err != nil {
		return overrides, fmt.Errorf("error reading override file: %w", err)
	}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return overrides, fmt.Errorf("error parsing override file: %w", err)
	}

	s.logger.Info("Loaded identifier field overrides",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(overrides.IdentifierFields)})
	return overrides, nil
}

// Save writes the overrides back to the store's file path.
func (s *FieldStore) Save(overrides Overrides) error {
	data, err := yaml.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("error marshaling overrides: %w", err)
	}
	if dir := filepath.Dir(s.FilePath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating override directory: %w", err)
		}
	}
	if err := os.WriteFile(s.FilePath, data, 0600); err != nil {
		return fmt.Errorf("error writing override file: %w", err)
	}
	return nil
}
