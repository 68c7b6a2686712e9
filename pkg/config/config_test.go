package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/history"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/conf"
)

func TestDefaults(t *testing.T) {
	var c Config
	require.NoError(t, conf.LoadFromYamlBytes([]byte(`
Log:
  Mode: console
Game:
  Rows: 5
Peer:
  Transport: ws
History:
  Backend: sqlite
Saves:
  Dir: saves
Http:
  Pprof: true
`), &c))

	grid, err := c.Game.Grid()
	require.NoError(t, err)
	assert.Equal(t, chess.Grid{Rows: 5, Cols: 4}, grid)
	assert.Equal(t, 400*time.Millisecond, c.Game.ThinkDelay)
	assert.Equal(t, TransportWebSocket, c.Peer.Transport)
	assert.Equal(t, "127.0.0.1:7878", c.Peer.Addr)
	assert.Equal(t, history.SQLite, c.History.Backend)
	assert.Equal(t, "data/history.db", c.History.Path)
	assert.Equal(t, time.Second, c.History.FlushInterval)
	assert.Equal(t, "saves", c.Saves.Dir)
	assert.True(t, c.Http.Pprof)
}

func TestRejectsBadValues(t *testing.T) {
	var c Config
	assert.Error(t, conf.LoadFromYamlBytes([]byte(`
Game:
  Rows: 11
`), &c))
	assert.Error(t, conf.LoadFromYamlBytes([]byte(`
Peer:
  Transport: bluetooth
`), &c))
	assert.Error(t, conf.LoadFromYamlBytes([]byte(`
History:
  Backend: etcd
`), &c))
}

func TestShippedConfigs(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "etc", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		data, err := os.ReadFile(f)
		require.NoError(t, err)

		var c Config
		require.NoError(t, conf.LoadFromYamlBytes(data, &c), f)
		_, err = c.Game.Grid()
		assert.NoError(t, err, f)
	}
}
