package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-analyze/bulk"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/go-harden/botlimit/botlimit/limit"
	"github.com/go-harden/botlimit/botlimit/protocol"
	"github.com/go-harden/botlimit/botlimit/service/ids"
	"github.com/go-harden/botlimit/botlimit/service/store"
)

const (
	toolLimitGet           = "limit_get"
	toolTextMeasure        = "text_measure"
	toolTextTruncate       = "text_truncate"
	toolOnboardingTruncate = "onboarding_truncate"
	toolHistoryList        = "history_list"
	toolHistoryClear       = "history_clear"

	historyIDPrefix     = "tr_"
	defaultHistoryLimit = 20
	logPreviewLen       = 40
)

func (s *Server) registerTools() {
	fieldNames := limit.FieldNames()

	s.mcp.AddTool(mcp.NewTool(toolLimitGet,
		mcp.WithDescription(`Get the maximum length of a form field, counted in user-perceived characters.

Omit field to list every field. Fields without a limit are reported as unlimited.`),
		mcp.WithString("field", mcp.Description("Field name"), mcp.Enum(fieldNames...)),
	), s.handleLimitGet)

	s.mcp.AddTool(mcp.NewTool(toolTextMeasure,
		mcp.WithDescription(`Measure text. "characters" is the user-perceived length that limits apply to; an emoji or a letter with combining accents counts once.`),
		mcp.WithString("value", mcp.Required(), mcp.Description("Text to measure")),
	), s.handleTextMeasure)

	s.mcp.AddTool(mcp.NewTool(toolTextTruncate,
		mcp.WithDescription(`Cut text down to the limit of a field without splitting any character.

Returns the value unchanged when it fits or the field is unlimited. Truncations are recorded in history.`),
		mcp.WithString("field", mcp.Required(), mcp.Description("Field name"), mcp.Enum(fieldNames...)),
		mcp.WithString("value", mcp.Required(), mcp.Description("Text to truncate")),
	), s.handleTextTruncate)

	s.mcp.AddTool(mcp.NewTool(toolOnboardingTruncate,
		mcp.WithDescription(`Truncate onboarding content: the prologue to the onboarding limit and each suggested question to the onboardingSuggestion limit.

Question order, ids, highlight flags and show mode are kept as given.`),
		mcp.WithObject("content", mcp.Required(),
			mcp.Description(`Object with "prologue", "suggested_questions" ([{id, content, highlight?}]) and "suggested_questions_show_mode" (0 random, 1 all)`)),
	), s.handleOnboardingTruncate)

	s.mcp.AddTool(mcp.NewTool(toolHistoryList,
		mcp.WithDescription("List recent truncations, newest first."),
		mcp.WithString("session_id", mcp.Description("Only entries recorded for this MCP session")),
		mcp.WithNumber("limit", mcp.Description(fmt.Sprintf("Maximum entries to return (default %d, 0 for all)", defaultHistoryLimit))),
	), s.handleHistoryList)

	s.mcp.AddTool(mcp.NewTool(toolHistoryClear,
		mcp.WithDescription("Remove recorded truncations: one entry by id, the entries of one session, or all of them."),
		mcp.WithString("id", mcp.Description("History entry id, as returned by text_truncate")),
		mcp.WithString("session_id", mcp.Description("Only clear entries of this MCP session")),
	), s.handleHistoryClear)
}

func (s *Server) handleLimitGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fields := limit.Fields()
	if name := req.GetString("field", ""); name != "" {
		f, err := limit.ParseField(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		fields = []limit.Field{f}
	}

	l := s.limits.Snapshot()
	return jsonResult(protocol.LimitsResponse{
		Limits: bulk.SliceTransform(func(f limit.Field) protocol.FieldLimit {
			max, ok := l.Get(f)
			return protocol.FieldLimit{Field: f.String(), Limit: max, Unlimited: !ok}
		}, fields),
	})
}

func (s *Server) handleTextMeasure(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	c := limit.Measure(value)
	return jsonResult(protocol.MeasureResponse{
		Characters: c.Graphemes,
		Runes:      c.Runes,
		Bytes:      c.Bytes,
		Width:      c.Width,
	})
}

func (s *Server) handleTextTruncate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	field, err := limit.ParseField(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	l := s.limits.Snapshot()
	max, _ := l.Get(field)
	result := l.Truncate(value, field)
	resp := protocol.TruncateResponse{
		Field:          field.String(),
		Value:          result,
		Truncated:      len(result) != len(value),
		OriginalLength: limit.GraphemeLength(value),
		Length:         limit.GraphemeLength(result),
		Limit:          max,
	}
	if resp.Truncated {
		resp.HistoryID = s.record(ctx, field, "", max, value, result)
	}
	return jsonResult(resp)
}

func (s *Server) handleOnboardingTruncate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := decodeOnboarding(req.GetArguments()["content"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	l := s.limits.Snapshot()
	result := l.TruncateOnboardingContent(content)
	resp := protocol.OnboardingResponse{Content: result}

	if result.Prologue != content.Prologue {
		max, _ := l.Get(limit.Onboarding)
		resp.Truncated = append(resp.Truncated, "prologue")
		resp.HistoryIDs = append(resp.HistoryIDs,
			s.record(ctx, limit.Onboarding, "prologue", max, content.Prologue, result.Prologue))
	}
	for i, q := range result.SuggestedQuestions {
		original := content.SuggestedQuestions[i].Content
		if q.Content == original {
			continue
		}
		ref := fmt.Sprintf("suggested_questions[%d]", i)
		max, _ := l.Get(limit.OnboardingSuggestion)
		resp.Truncated = append(resp.Truncated, ref)
		resp.HistoryIDs = append(resp.HistoryIDs,
			s.record(ctx, limit.OnboardingSuggestion, ref, max, original, q.Content))
	}
	return jsonResult(resp)
}

// decodeOnboarding accepts the content argument as an object or as a JSON string.
func decodeOnboarding(raw any) (limit.OnboardingContent, error) {
	var content limit.OnboardingContent
	var data []byte
	switch v := raw.(type) {
	case nil:
		return content, errors.New("content is required")
	case string:
		data = []byte(v)
	default:
		var err error
		if data, err = json.Marshal(v); err != nil {
			return content, fmt.Errorf("invalid content: %w", err)
		}
	}
	if err := json.Unmarshal(data, &content); err != nil {
		return content, fmt.Errorf("invalid content: %w", err)
	}
	return content, nil
}

func (s *Server) handleHistoryList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := req.GetInt("limit", defaultHistoryLimit)
	if n < 0 {
		return mcp.NewToolResultError("limit must not be negative"), nil
	}

	entries, total := s.history.List(req.GetString("session_id", ""), n)
	return jsonResult(protocol.HistoryResponse{
		Entries: bulk.SliceTransform(func(e store.HistoryEntry) protocol.HistoryEntry {
			return protocol.HistoryEntry{
				ID:             e.ID,
				SessionID:      e.SessionID,
				Field:          e.Field,
				Ref:            e.Ref,
				Limit:          e.Limit,
				OriginalLength: e.OriginalLength,
				Original:       e.Original,
				Result:         e.Result,
				At:             e.At,
			}
		}, entries),
		Total: total,
	})
}

func (s *Server) handleHistoryClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if id := req.GetString("id", ""); id != "" {
		if !s.history.Exists(id) {
			return mcp.NewToolResultError(fmt.Sprintf("history entry %q not found", id)), nil
		}
		s.history.Delete(id)
		return jsonResult(protocol.HistoryClearResponse{Removed: 1})
	}

	before := s.history.Count()
	if session := req.GetString("session_id", ""); session != "" {
		s.history.RemoveSession(session)
	} else {
		s.history.Clear()
	}
	return jsonResult(protocol.HistoryClearResponse{Removed: before - s.history.Count()})
}

func (s *Server) record(ctx context.Context, field limit.Field, ref string, max int, original, result string) string {
	entry := store.HistoryEntry{
		ID:             ids.Generate(historyIDPrefix),
		SessionID:      sessionID(ctx),
		Field:          field.String(),
		Ref:            ref,
		Limit:          max,
		OriginalLength: limit.GraphemeLength(original),
		Original:       original,
		Result:         result,
		At:             time.Now().UTC(),
	}
	s.history.Register(entry)

	s.logger.Debug("truncated",
		"id", entry.ID, "field", entry.Field, "ref", ref, "limit", max,
		"from", entry.OriginalLength, "preview", preview(original, logPreviewLen))
	return entry.ID
}

func sessionID(ctx context.Context) string {
	if session := server.ClientSessionFromContext(ctx); session != nil {
		return session.SessionID()
	}
	return ""
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
