package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"tableflip.dev/mellow/pkg/entry"
)

var now = time.Date(2024, time.January, 2, 8, 0, 0, 0, time.UTC)

func sampleDocument() Document {
	t := entry.NewTimestamp(time.Date(2024, time.January, 1, 9, 30, 15, 123e6, time.UTC))
	return NewDocument(
		[]entry.JournalEntry{{ID: 1704101415123, Date: t, Content: "Hello world"}},
		[]entry.MoodEntry{{ID: 1704101415124, Date: t, Mood: entry.Happy, Note: "sunny"}, {ID: 1, Date: t, Mood: entry.Sad}},
		now,
	)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, "yaml": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, sampleDocument()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["exportedAt"] != "2024-01-02T08:00:00.000Z" {
		t.Fatalf("unexpected exportedAt %v", got["exportedAt"])
	}
	journal := got["journal"].([]interface{})
	first := journal[0].(map[string]interface{})
	if first["date"] != "2024-01-01T09:30:15.123Z" || first["content"] != "Hello world" {
		t.Fatalf("unexpected journal record %v", first)
	}
	moods := got["moods"].([]interface{})
	if _, ok := moods[1].(map[string]interface{})["note"]; ok {
		t.Fatalf("empty note should be omitted")
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, sampleDocument()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got Document
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if len(got.Moods) != 2 || got.Moods[0].Mood != "happy" || got.Moods[0].Note != "sunny" {
		t.Fatalf("unexpected moods %+v", got.Moods)
	}
	if got.Journal[0].ID != 1704101415123 {
		t.Fatalf("unexpected journal %+v", got.Journal)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, Format("csv"), Document{}); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
