package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LENAX/chain-engine/pkg/api"
	"github.com/LENAX/chain-engine/pkg/config"
	"github.com/LENAX/chain-engine/pkg/core/chain"
	"github.com/LENAX/chain-engine/pkg/core/engine"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewDefaultConfig()
	cfg.ChainEngine.Storage.Database.Type = config.DatabaseSQLite
	cfg.ChainEngine.Storage.Database.DSN = filepath.Join(t.TempDir(), "client.db")
	cfg.ChainEngine.Events.Backend = config.EventsNone
	cfg.ChainEngine.Storage.Cache.Enabled = true

	eng, err := engine.NewEngineBuilder("").WithConfig(cfg).Build()
	require.NoError(t, err)
	require.NoError(t, eng.Start(context.Background()))
	t.Cleanup(eng.Stop)

	srv := httptest.NewServer(api.SetupRouter(eng, "test"))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Calculate(t *testing.T) {
	c := New(newTestServer(t).URL + "/")
	ctx := context.Background()

	res, err := c.Calculate(ctx, []chain.Pair{chain.P("ATL", "EWR"), chain.P("SFO", "ATL")})
	require.NoError(t, err)
	assert.Equal(t, chain.Result{First: "SFO", Last: "EWR"}, res)

	_, err = c.Calculate(ctx, []chain.Pair{chain.P("foo", "foo")})
	var serr *ServerError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusBadRequest, serr.StatusCode)
	assert.Equal(t, "cycle", serr.Kind)
	assert.Equal(t, `cycle detected in node "foo"`, serr.Message)
}

func TestClient_PathAndHistory(t *testing.T) {
	c := New(newTestServer(t).URL)
	ctx := context.Background()

	path, err := c.Path(ctx, []chain.Pair{chain.P("IND", "EWR"), chain.P("SFO", "ATL"), chain.P("GSO", "IND"), chain.P("ATL", "GSO")})
	require.NoError(t, err)
	assert.Equal(t, []string{"SFO", "ATL", "GSO", "IND", "EWR"}, path.Path)
	require.NotEmpty(t, path.RecordID)

	_, err = c.Path(ctx, nil)
	var serr *ServerError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "invalid", serr.Kind)

	list, err := c.ListHistory(ctx, "success", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	rec, err := c.GetHistory(ctx, path.RecordID)
	require.NoError(t, err)
	assert.Equal(t, "SFO", rec.First)

	_, err = c.GetHistory(ctx, "calc-missing")
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
}

func TestClient_PurgeAndCache(t *testing.T) {
	c := New(newTestServer(t).URL)
	ctx := context.Background()

	path, err := c.Path(ctx, []chain.Pair{chain.P("a", "b")})
	require.NoError(t, err)

	deleted, err := c.PurgeHistory(ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	require.NoError(t, c.EvictCache(ctx, path.Fingerprint))
	err = c.EvictCache(ctx, path.Fingerprint)
	var serr *ServerError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)

	_, err = c.Calculate(ctx, []chain.Pair{chain.P("a", "b")})
	require.NoError(t, err)
	cleared, err := c.ClearCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared)
}

func TestClient_ConnectionError(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.Calculate(context.Background(), []chain.Pair{chain.P("a", "b")})
	assert.Error(t, err)
}
