package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/mellow/pkg/journal"
)

const (
	journalURI   = "mellow://journal"
	moodsURI     = "mellow://moods"
	dashboardURI = "mellow://dashboard"
)

func registerResources(srv *server.MCPServer, h *handlers) {
	srv.AddResource(mcp.NewResource(
		journalURI,
		"Journal",
		mcp.WithResourceDescription("Every journal entry, newest first."),
		mcp.WithMIMEType("application/json"),
	), h.readJournal)

	srv.AddResource(mcp.NewResource(
		moodsURI,
		"Moods",
		mcp.WithResourceDescription("Every mood entry, newest first."),
		mcp.WithMIMEType("application/json"),
	), h.readMoods)

	srv.AddResource(mcp.NewResource(
		dashboardURI,
		"Dashboard",
		mcp.WithResourceDescription("Summary of recent moods and journal activity."),
		mcp.WithMIMEType("application/json"),
	), h.readDashboard)
}

func (h *handlers) readJournal(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	entries := h.store.Journal()
	return encodeResourceJSON(request.Params.URI, map[string]any{"count": len(entries), "entries": entries})
}

func (h *handlers) readMoods(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	entries := h.store.Moods()
	return encodeResourceJSON(request.Params.URI, map[string]any{"count": len(entries), "entries": entries})
}

func (h *handlers) readDashboard(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return encodeResourceJSON(request.Params.URI, journal.Summarize(h.store.Journal(), h.store.Moods(), h.now()))
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
