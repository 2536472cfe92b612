package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/mellow/pkg/commands/options"
	"tableflip.dev/mellow/pkg/entry"
)

func init() {
	color.NoColor = true
}

// run executes the root command with args against an isolated config.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("MELLOW_CONFIG_PATH", dir)
	t.Setenv("MELLOW_LOG_FILE", dir+"/mellow.log")
	t.Setenv("MELLOW_PATH", dir+"/db")
	*oo = options.OutputOptions{}
	*g = options.GlobalOptions{}

	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestJournalAddAndList(t *testing.T) {
	out, err := run(t, "", "journal", "add", "--json", "Morning", "pages")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	var got entry.JournalEntry
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Content != "Morning pages" {
		t.Fatalf("unexpected entry %+v", got)
	}
}

func TestDiskvPersistsAcrossCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("MELLOW_CONFIG_PATH", dir)
	t.Setenv("MELLOW_LOG_FILE", dir+"/mellow.log")
	t.Setenv("MELLOW_PATH", dir+"/db")

	for _, args := range [][]string{
		{"mood", "add", "happy", "--note", "sun"},
		{"mood", "list", "--json"},
	} {
		*oo = options.OutputOptions{}
		*g = options.GlobalOptions{}
		cmd := New()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs(args)
		if err := cmd.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if args[1] == "list" {
			var moods []entry.MoodEntry
			if err := json.Unmarshal(out.Bytes(), &moods); err != nil {
				t.Fatalf("decode %q: %v", out.String(), err)
			}
			if len(moods) != 1 || moods[0].Mood != entry.Happy || moods[0].Note != "sun" {
				t.Fatalf("unexpected moods %+v", moods)
			}
		}
	}
}

func TestJournalAddBlankFails(t *testing.T) {
	if _, err := run(t, "", "journal", "add", "--ephemeral", "   "); err == nil || !strings.Contains(err.Error(), "content is required") {
		t.Fatalf("expected content error, got %v", err)
	}
}

func TestJSONErrors(t *testing.T) {
	out, err := run(t, "", "mood", "add", "--ephemeral", "--json", "grumpy")
	if err != nil {
		t.Fatalf("json mode should report errors in the output, got %v", err)
	}
	if !strings.Contains(out, `"error"`) || !strings.Contains(out, "grumpy") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestMoodSearchRejectsBadDate(t *testing.T) {
	if _, err := run(t, "", "mood", "search", "--ephemeral", "--on", "Feb 2"); err == nil {
		t.Fatalf("expected date error")
	}
}

func TestDeleteUnknownID(t *testing.T) {
	_, err := run(t, "", "journal", "delete", "--ephemeral", "--yes", "12345")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUnknownBackend(t *testing.T) {
	if _, err := run(t, "", "dashboard", "--backend", "cassandra"); err == nil {
		t.Fatalf("expected backend error")
	}
}

func TestExportYAML(t *testing.T) {
	out, err := run(t, "", "export", "--ephemeral", "-o", "yaml")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "journal: []") || !strings.Contains(out, "moods: []") {
		t.Fatalf("unexpected export %q", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestListenURL(t *testing.T) {
	a := &net.TCPAddr{IP: net.IPv4zero, Port: 9000}
	if got := listenURL(a, "0.0.0.0", "/mcp", false); got != "http://127.0.0.1:9000/mcp" {
		t.Fatalf("unexpected url %q", got)
	}
	a = &net.TCPAddr{IP: net.ParseIP("::1"), Port: 443}
	if got := listenURL(a, "::1", "/mcp", true); got != "https://[::1]:443/mcp" {
		t.Fatalf("unexpected url %q", got)
	}
}
