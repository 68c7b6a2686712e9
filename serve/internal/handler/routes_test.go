package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/config"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/history"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/message"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/ui"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/saves"
	"github.com/HuXin0817/dots-and-boxes-p2p/serve/internal/svc"
	"github.com/HuXin0817/dots-and-boxes-p2p/serve/internal/types"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) *svc.ServiceContext {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	store, err := history.NewSQLiteStore(filepath.Join(dir, "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	savesStore, err := saves.NewStore(filepath.Join(dir, "saves"))
	require.NoError(t, err)

	var c config.Config
	c.Http.Pprof = true
	return &svc.ServiceContext{Config: c, History: store, Saves: savesStore, Board: ui.NewBoard(false)}
}

func do(t *testing.T, router *gin.Engine, method, path string, v any) int {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	if v != nil && w.Code < 300 {
		require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), v))
	}
	return w.Code
}

func TestHistory(t *testing.T) {
	svcCtx := newTestContext(t)
	router := NewRouter(svcCtx)

	var resp types.HistoryResponse
	require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/history", &resp))
	assert.Empty(t, resp.Results)

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()
	require.NoError(t, svcCtx.History.Save(ctx, chess.Result{PlayerOne: "You", PlayerTwo: "Computer", Winner: "You", StartedAt: start, VsComputer: true}))
	require.NoError(t, svcCtx.History.Save(ctx, chess.Result{PlayerOne: "Player 1", PlayerTwo: "Player 2", Winner: chess.Tie, StartedAt: start.Add(time.Hour)}))

	require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/history", &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, chess.Tie, resp.Results[0].Winner)
	assert.Equal(t, "You", resp.Results[1].Winner)
}

func TestGameResult(t *testing.T) {
	svcCtx := newTestContext(t)
	router := NewRouter(svcCtx)

	game := message.NewGameUid()
	require.NoError(t, svcCtx.History.Save(context.Background(), chess.Result{
		Game: string(game), PlayerOne: "You (Host)", PlayerTwo: "Opponent (Client)", Winner: "You (Host)",
		StartedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}))

	var resp chess.Result
	require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/history/"+string(game), &resp))
	assert.Equal(t, "You (Host)", resp.Winner)

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/history/"+string(message.NewGameUid()), nil))
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/history/not-a-game", nil))
}

func TestSaves(t *testing.T) {
	svcCtx := newTestContext(t)
	router := NewRouter(svcCtx)

	state, err := chess.NewLocalGame(chess.Grid{Rows: 3, Cols: 3}, true).Replay(chess.H(0, 0), chess.V(1, 2))
	require.NoError(t, err)
	id, err := svcCtx.Saves.Save(state, time.Now())
	require.NoError(t, err)

	var list types.SavesResponse
	require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/saves", &list))
	require.Len(t, list.Saves, 1)
	assert.Equal(t, id, list.Saves[0].ID)
	assert.Equal(t, [2]string{"You", "Computer"}, list.Saves[0].Players)
	assert.Equal(t, "You", list.Saves[0].Current)

	var detail types.SaveDetail
	require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/saves/"+id, &detail))
	assert.Len(t, detail.Moves, 2)
	assert.Equal(t, svcCtx.Board.Render(state), detail.Board)

	assert.Equal(t, http.StatusNoContent, do(t, router, http.MethodDelete, "/saves/"+id, nil))
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/saves/"+id, nil))
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodDelete, "/saves/"+id, nil))
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/saves/whatever", nil))
}

func TestPprofRoutes(t *testing.T) {
	router := NewRouter(newTestContext(t))
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/debug/pprof/cmdline", nil))
}
