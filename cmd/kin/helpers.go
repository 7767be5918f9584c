package main

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"kin/internal/config"
	"kin/internal/directory"
	kinerrors "kin/internal/errors"
	"kin/internal/kinship"
	"kin/internal/storage"
)

var (
	dirOnce   sync.Once
	sharedDir *directory.Directory
	sharedCfg *config.Config
	dirErr    error
)

// resolveDataDir determines the data directory.
// Precedence: --data-dir flag > KIN_DATA_DIR env var > ~/.kin
func resolveDataDir() (string, error) {
	if dataDirFlag != "" {
		return dataDirFlag, nil
	}
	return config.DataDir()
}

// getDirectory returns a shared Directory instance backed by SQLite.
// It is lazily initialized on first use.
func getDirectory() (*directory.Directory, *config.Config, error) {
	dirOnce.Do(func() {
		dataDir, err := resolveDataDir()
		if err != nil {
			dirErr = err
			return
		}

		cfg, err := config.LoadConfig(dataDir)
		if err != nil {
			dirErr = fmt.Errorf("failed to load config: %w", err)
			return
		}
		if err := cfg.Validate(); err != nil {
			dirErr = fmt.Errorf("invalid config: %w", err)
			return
		}

		logger := newLogger(cfg.Logging.Level)

		db, err := storage.Open(cfg.StorageDir(dataDir), logger)
		if err != nil {
			dirErr = fmt.Errorf("failed to open database: %w", err)
			return
		}

		dir, err := directory.Open(storage.NewStore(db), logger, directory.Options{
			Explain: cfg.ExplainOptions(),
		})
		if err != nil {
			dirErr = err
			return
		}

		sharedDir = dir
		sharedCfg = cfg
	})

	return sharedDir, sharedCfg, dirErr
}

// mustGetDirectory returns the shared Directory or propagates the open error
// through cobra's RunE path.
func mustGetDirectory() (*directory.Directory, error) {
	dir, _, err := getDirectory()
	return dir, err
}

// resolvePerson finds a person by id, exact name, or unique case-insensitive
// name prefix, in that order.
func resolvePerson(d *directory.Directory, ref string) (kinship.Person, error) {
	if p, ok := d.Person(ref); ok {
		return p, nil
	}

	needle := strings.ToLower(strings.TrimSpace(ref))
	if needle == "" {
		return kinship.Person{}, kinerrors.New(kinerrors.InvalidInput, "person name must not be empty", nil)
	}

	var exact, prefixed []kinship.Person
	for _, p := range d.People() {
		name := strings.ToLower(p.Name)
		if name == needle {
			exact = append(exact, p)
		} else if strings.HasPrefix(name, needle) {
			prefixed = append(prefixed, p)
		}
	}

	matches := exact
	if len(matches) == 0 {
		matches = prefixed
	}

	switch len(matches) {
	case 0:
		return kinship.Person{}, kinerrors.New(kinerrors.PersonNotFound, "no person matching "+ref, nil)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, p := range matches {
			names[i] = fmt.Sprintf("%s (%s)", p.Name, p.ID)
		}
		sort.Strings(names)
		return kinship.Person{}, kinerrors.New(kinerrors.InvalidInput,
			fmt.Sprintf("%q is ambiguous: %s", ref, strings.Join(names, ", ")), nil)
	}
}
