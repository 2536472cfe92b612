// Package info reports where mellow keeps its data and how much it holds.
package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mellow/pkg/config"
	"tableflip.dev/mellow/pkg/journal"
	"tableflip.dev/mellow/pkg/printers"
	"tableflip.dev/mellow/pkg/store"
)

type Info struct {
	Config *config.Config
	Store  *journal.Store
	JSON   bool
	Out    io.Writer
}

type report struct {
	ConfigPath string        `json:"configPath,omitempty"`
	Backend    store.Backend `json:"backend"`
	Location   string        `json:"location,omitempty"`
	LogFile    string        `json:"logFile,omitempty"`
	Journal    int           `json:"journalEntries"`
	Moods      int           `json:"moodEntries"`
}

func (n *Info) Do(_ context.Context) error {
	if n.Config == nil {
		return errors.New("can not report, no config")
	}
	if n.Store == nil {
		return errors.New("can not report, no store")
	}
	r := report{
		ConfigPath: os.Getenv("MELLOW_CONFIG_PATH"),
		Backend:    n.Config.Store.Backend,
		Location:   location(n.Config.Store),
		LogFile:    n.Config.Log.File,
		Journal:    len(n.Store.Journal()),
		Moods:      len(n.Store.Moods()),
	}
	if n.JSON {
		return printers.JSON(n.Out, r)
	}

	w := n.Out
	if w == nil {
		w = color.Output
	}
	if r.ConfigPath == "" {
		r.ConfigPath = color.New(color.Faint).Sprint("MELLOW_CONFIG_PATH not set")
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Config path:", r.ConfigPath)
	tbl.AddRow("Backend:", r.Backend)
	if r.Location != "" {
		tbl.AddRow("Location:", r.Location)
	}
	tbl.AddRow("Log file:", r.LogFile)
	tbl.AddRow("Journal entries:", r.Journal)
	tbl.AddRow("Mood entries:", r.Moods)
	_, err := fmt.Fprintln(w, tbl)
	return err
}

// location names where a backend keeps data without exposing credentials.
func location(o store.Options) string {
	switch o.Backend {
	case store.BackendDiskv:
		return o.Path
	case store.BackendSQLite:
		return o.SQLite.Path
	case store.BackendPostgres:
		return "table " + o.Postgres.Table
	case store.BackendMongo:
		return o.Mongo.Database + "." + o.Mongo.Collection
	case store.BackendRedis:
		return "prefix " + o.Redis.Prefix
	}
	return ""
}
