package mcpclient

import (
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-harden/botlimit/botlimit/limit"
	"github.com/go-harden/botlimit/botlimit/service"
)

func startService(t *testing.T) *service.Server {
	t.Helper()

	srv, err := service.NewServer(service.DaemonFlags{
		WorkDir:    t.TempDir(),
		ListenAddr: "127.0.0.1:0",
		LogLevel:   "error",
	})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Run(t.Context()) }()
	srv.WaitTillStarted()
	t.Cleanup(func() {
		srv.RequestShutdown()
		<-done
	})
	return srv
}

func TestConnectHTTP(t *testing.T) {
	t.Parallel()

	srv := startService(t)
	require.NotEmpty(t, srv.URL())

	c, err := Connect(t.Context(), srv.URL())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	limits, err := c.Limits(t.Context(), "botName")
	require.NoError(t, err)
	require.Len(t, limits.Limits, 1)
	assert.Equal(t, 20, limits.Limits[0].Limit)

	resp, err := c.Truncate(t.Context(), "botName", "a bot name that is far too long")
	require.NoError(t, err)
	assert.Equal(t, "a bot name that is f", resp.Value)
	assert.True(t, resp.Truncated)

	history, err := c.HistoryList(t.Context(), HistoryListOpts{})
	require.NoError(t, err)
	require.Len(t, history.Entries, 1)
	assert.Equal(t, resp.HistoryID, history.Entries[0].ID)

	own, err := c.HistoryList(t.Context(), HistoryListOpts{SessionID: history.Entries[0].SessionID, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, own.Entries, 1)
}

func TestConnectUnreachable(t *testing.T) {
	t.Parallel()

	_, err := Connect(t.Context(), "http://127.0.0.1:1/mcp")
	require.Error(t, err)
}

func TestInProcessClient(t *testing.T) {
	t.Parallel()

	srv, err := service.NewServer(service.DaemonFlags{WorkDir: t.TempDir(), LogLevel: "error"})
	require.NoError(t, err)

	inner, err := client.NewInProcessClient(srv.MCPServer())
	require.NoError(t, err)
	c, err := Wrap(t.Context(), inner)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	t.Run("measure", func(t *testing.T) {
		m, err := c.Measure(t.Context(), "é")
		require.NoError(t, err)
		assert.Equal(t, 1, m.Characters)
		assert.Equal(t, 2, m.Runes)
		assert.Equal(t, 3, m.Bytes)
	})

	t.Run("onboarding", func(t *testing.T) {
		resp, err := c.TruncateOnboarding(t.Context(), limit.OnboardingContent{
			Prologue: "hi",
			SuggestedQuestions: []limit.SuggestedQuestion{
				{ID: "q1", Content: "a question well over the fifty character limit for suggestions"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "hi", resp.Content.Prologue)
		assert.Equal(t, "a question well over the fifty character limit for", resp.Content.SuggestedQuestions[0].Content)
		assert.Equal(t, []string{"suggested_questions[0]"}, resp.Truncated)
	})

	t.Run("tool_error", func(t *testing.T) {
		_, err := c.Truncate(t.Context(), "botname", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "text_truncate")
	})

	t.Run("history_clear_by_id", func(t *testing.T) {
		truncated, err := c.Truncate(t.Context(), "botName", "another name that is far too long")
		require.NoError(t, err)
		require.NotEmpty(t, truncated.HistoryID)

		resp, err := c.HistoryClear(t.Context(), HistoryClearOpts{ID: truncated.HistoryID})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Removed)

		_, err = c.HistoryClear(t.Context(), HistoryClearOpts{ID: truncated.HistoryID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("history_clear", func(t *testing.T) {
		_, err := c.Truncate(t.Context(), "botName", "this name runs past twenty characters")
		require.NoError(t, err)

		resp, err := c.HistoryClear(t.Context(), HistoryClearOpts{})
		require.NoError(t, err)
		assert.Positive(t, resp.Removed)
	})
}
