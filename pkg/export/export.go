// Package export writes both collections as a single JSON or YAML document.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tableflip.dev/mellow/pkg/entry"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrUnknownFormat = errors.New("export: unknown format")

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// Document is the exported shape. Dates use the stored ISO form.
type Document struct {
	ExportedAt string          `json:"exportedAt" yaml:"exportedAt"`
	Journal    []JournalRecord `json:"journal" yaml:"journal"`
	Moods      []MoodRecord    `json:"moods" yaml:"moods"`
}

type JournalRecord struct {
	ID      int64  `json:"id" yaml:"id"`
	Date    string `json:"date" yaml:"date"`
	Content string `json:"content" yaml:"content"`
}

type MoodRecord struct {
	ID   int64  `json:"id" yaml:"id"`
	Date string `json:"date" yaml:"date"`
	Mood string `json:"mood" yaml:"mood"`
	Note string `json:"note,omitempty" yaml:"note,omitempty"`
}

// NewDocument copies both collections, keeping their newest first order.
func NewDocument(journal []entry.JournalEntry, moods []entry.MoodEntry, now time.Time) Document {
	doc := Document{
		ExportedAt: entry.NewTimestamp(now).ISO(),
		Journal:    make([]JournalRecord, 0, len(journal)),
		Moods:      make([]MoodRecord, 0, len(moods)),
	}
	for _, e := range journal {
		doc.Journal = append(doc.Journal, JournalRecord{ID: e.ID, Date: e.Date.ISO(), Content: e.Content})
	}
	for _, e := range moods {
		doc.Moods = append(doc.Moods, MoodRecord{ID: e.ID, Date: e.Date.ISO(), Mood: string(e.Mood), Note: e.Note})
	}
	return doc
}

// Write encodes doc to w in format f.
func Write(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("export: encode yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, f)
}
