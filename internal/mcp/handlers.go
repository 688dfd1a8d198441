package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/ziadkadry99/poe2genie/internal/assistant"
	"github.com/ziadkadry99/poe2genie/internal/build"
	"github.com/ziadkadry99/poe2genie/internal/catalog"
)

// maxSearchResults caps the items listed by search_items.
const maxSearchResults = 25

func (s *Server) callLogger(tool string) *zap.Logger {
	return s.Logger.With(zap.String("tool", tool), zap.String("call_id", uuid.NewString()))
}

// handleSearchItems searches the price catalog.
func (s *Server) handleSearchItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	itemType := request.GetString("item_type", catalog.ItemTypeAll)
	league := request.GetString("league", s.Defaults.League)

	logger := s.callLogger("search_items")
	results, err := s.Searcher.Search(ctx, query, itemType, league)
	if err != nil {
		logger.Warn("search failed", zap.Error(err))
		return mcp.NewToolResultError("Failed to fetch item data."), nil
	}
	logger.Debug("search done", zap.String("query", query), zap.Int("results", len(results)))

	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No items matching %q in %s.", query, league)), nil
	}
	return mcp.NewToolResultText(formatItems(results, league)), nil
}

// handleDecodeBuild turns a share token back into build JSON.
func (s *Server) handleDecodeBuild(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	token, err := request.RequireString("token")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: token"), nil
	}
	b, err := build.Decode(token)
	if err != nil {
		return mcp.NewToolResultError("Invalid Build Link"), nil
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode build: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// handleAskAssistant forwards a question to the assistant gateway.
func (s *Server) handleAskAssistant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil || strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("Question is required"), nil
	}
	answer, err := s.Gateway.Ask(ctx, question, assistant.QuestionSystemPrompt)
	if err != nil {
		s.callLogger("ask_assistant").Warn("assistant call failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(answer), nil
}

// handleListBuilds lists saved builds.
func (s *Server) handleListBuilds(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	builds := s.Library.List(ctx)
	if len(builds) == 0 {
		return mcp.NewToolResultText("No saved builds."), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d saved build(s):\n", len(builds))
	for _, b := range builds {
		token, err := build.Encode(b)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "\n- %s (%s), %d passives\n  token: %s\n", b.Name, b.CharacterClass, len(b.Passives.SelectedNodes), token)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatItems renders search results as plain text for agent consumption.
func formatItems(items []catalog.Item, league string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d item(s) in %s:\n", len(items), league)
	for i, it := range items {
		if i == maxSearchResults {
			fmt.Fprintf(&sb, "\n... %d more\n", len(items)-maxSearchResults)
			break
		}
		fmt.Fprintf(&sb, "\n- %s", it.Name)
		if it.BaseType != "" {
			fmt.Fprintf(&sb, " [%s]", it.BaseType)
		}
		fmt.Fprintf(&sb, ": %g chaos", it.ChaosValue)
		if it.ItemType != "" {
			fmt.Fprintf(&sb, " (%s)", it.ItemType)
		}
		for _, m := range it.ExplicitModifiers {
			fmt.Fprintf(&sb, "\n    %s", m.Text)
		}
	}
	sb.WriteString("\n")
	return sb.String()
}
