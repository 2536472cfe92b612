package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"tableflip.dev/mellow/pkg/entry"
	"tableflip.dev/mellow/pkg/journal"
)

// handlers implements every tool and resource against a journal store.
type handlers struct {
	store  *journal.Store
	logger *zap.Logger
	now    func() time.Time
}

func newHandlers(s *journal.Store, logger *zap.Logger) *handlers {
	return &handlers{store: s, logger: logger, now: time.Now}
}

func moodEnum() []string {
	moods := entry.Moods()
	out := make([]string, 0, len(moods))
	for _, m := range moods {
		out = append(out, string(m))
	}
	return out
}

func registerTools(srv *server.MCPServer, h *handlers) {
	srv.AddTool(mcp.NewTool(
		"add_journal_entry",
		mcp.WithDescription("Write a new journal entry."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Text of the entry. Must not be blank."),
		),
	), h.addJournal)

	srv.AddTool(mcp.NewTool(
		"add_mood_entry",
		mcp.WithDescription("Record a mood, optionally with a note."),
		mcp.WithString("mood",
			mcp.Description("Mood to record. Defaults to neutral."),
			mcp.Enum(moodEnum()...),
		),
		mcp.WithString("note",
			mcp.Description("Optional note."),
		),
	), h.addMood)

	srv.AddTool(mcp.NewTool(
		"list_journal_entries",
		mcp.WithDescription("List every journal entry, newest first."),
	), h.listJournal)

	srv.AddTool(mcp.NewTool(
		"list_mood_entries",
		mcp.WithDescription("List every mood entry, newest first."),
	), h.listMoods)

	srv.AddTool(mcp.NewTool(
		"search_journal",
		mcp.WithDescription("Find journal entries containing a term (case-insensitive) and dated with a prefix such as 2024-01-01 or 2024-01."),
		mcp.WithString("term", mcp.Description("Text to look for. Empty matches every entry.")),
		mcp.WithString("date", mcp.Description("UTC date prefix. Empty matches every date.")),
	), h.searchJournal)

	srv.AddTool(mcp.NewTool(
		"search_moods",
		mcp.WithDescription("Find mood entries by mood and UTC date prefix."),
		mcp.WithString("mood",
			mcp.Description("Mood to match, or all."),
			mcp.Enum(append([]string{entry.MoodAll}, moodEnum()...)...),
		),
		mcp.WithString("date", mcp.Description("UTC date prefix. Empty matches every date.")),
	), h.searchMoods)

	srv.AddTool(mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete a journal or mood entry. Nothing is removed unless confirm is true."),
		mcp.WithString("collection",
			mcp.Required(),
			mcp.Enum(string(journal.CollectionJournal), string(journal.CollectionMood)),
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Entry id."),
		),
		mcp.WithBoolean("confirm",
			mcp.Description("Must be true to delete."),
		),
	), h.deleteEntry)

	srv.AddTool(mcp.NewTool(
		"dashboard",
		mcp.WithDescription("Recent moods, the latest journal entry, mood counts and the last seven days."),
	), h.dashboard)
}

func (h *handlers) addJournal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Content string `json:"content"`
	}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	e, err := h.store.AddJournal(ctx, args.Content)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	h.logger.Info("journal entry added via mcp", zap.Int64("id", e.ID))
	return toJSONResult(e)
}

func (h *handlers) addMood(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Mood string `json:"mood"`
		Note string `json:"note"`
	}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	mood, err := entry.ParseMood(args.Mood)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	e, err := h.store.AddMood(ctx, mood, args.Note)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	h.logger.Info("mood entry added via mcp", zap.Int64("id", e.ID), zap.String("mood", string(e.Mood)))
	return toJSONResult(e)
}

func (h *handlers) listJournal(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries := h.store.Journal()
	return toJSONResult(map[string]any{"count": len(entries), "entries": entries})
}

func (h *handlers) listMoods(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries := h.store.Moods()
	return toJSONResult(map[string]any{"count": len(entries), "entries": entries})
}

func (h *handlers) searchJournal(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Term string `json:"term"`
		Date string `json:"date"`
	}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	results := journal.SearchJournal(h.store.Journal(), args.Term, args.Date)
	return toJSONResult(map[string]any{"count": len(results), "entries": results})
}

func (h *handlers) searchMoods(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Mood string `json:"mood"`
		Date string `json:"date"`
	}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	filter, err := entry.ParseMoodFilter(args.Mood)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results := journal.SearchMoods(h.store.Moods(), filter, args.Date)
	return toJSONResult(map[string]any{"count": len(results), "entries": results})
}

func (h *handlers) deleteEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Collection string `json:"collection"`
		ID         int64  `json:"id"`
		Confirm    bool   `json:"confirm"`
	}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	c, err := journal.ParseCollection(args.Collection)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !args.Confirm {
		return mcp.NewToolResultError(fmt.Sprintf("refusing to delete %s entry %d without confirm=true", c, args.ID)), nil
	}
	removed, err := h.store.Delete(ctx, c, args.ID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if removed {
		h.logger.Info("entry deleted via mcp", zap.String("collection", string(c)), zap.Int64("id", args.ID))
	}
	return toJSONResult(map[string]any{"collection": c, "id": args.ID, "deleted": removed})
}

func (h *handlers) dashboard(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toJSONResult(journal.Summarize(h.store.Journal(), h.store.Moods(), h.now()))
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
