// Package catalog loads and validates the study content catalog: one JSON
// document with questions, learning content and formulas, fetched once at
// startup from a local file or an HTTP endpoint.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"denken-plus-api/models"
	"denken-plus-api/utils"
)

const fetchTimeout = 15 * time.Second

// Load reads the catalog from source, which is either a filesystem path or
// an http(s) URL. Any read, parse or validation failure is returned as an
// error; the caller is expected to keep running in a blocked state rather
// than crash.
func Load(source string) (*models.Catalog, error) {
	utils.LogCatalog("Loading catalog from %s", source)
	start := time.Now()

	var (
		raw []byte
		err error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		raw, err = fetch(source)
	} else {
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var cat models.Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if err := Validate(&cat); err != nil {
		return nil, err
	}

	utils.LogCatalog("Catalog loaded: %d questions, %d learning items, %d formulas (%v)",
		len(cat.Questions), len(cat.LearningContent), len(cat.Formulas), time.Since(start))
	return &cat, nil
}

func fetch(url string) ([]byte, error) {
	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// Validate checks the catalog invariants: unique question ids, and every
// answer matching exactly one of its question's options.
func Validate(cat *models.Catalog) error {
	seen := make(map[int]bool, len(cat.Questions))
	for i, q := range cat.Questions {
		if q.ID == 0 {
			return fmt.Errorf("question at index %d has no id", i)
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %d", q.ID)
		}
		seen[q.ID] = true

		if len(q.Options) == 0 {
			return fmt.Errorf("question %d has no options", q.ID)
		}
		matches := 0
		for _, opt := range q.Options {
			if opt == q.Answer {
				matches++
			}
		}
		if matches != 1 {
			return fmt.Errorf("question %d: answer %q matches %d options, want exactly 1", q.ID, q.Answer, matches)
		}
	}
	return nil
}
