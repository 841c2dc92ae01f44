package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/gamezone/internal/apitest"
	"github.com/dmitrijs2005/gamezone/internal/client/client"
	"github.com/dmitrijs2005/gamezone/internal/client/repositories/live"
	"github.com/stretchr/testify/require"
)

type env struct {
	api   *apitest.Server
	http  *client.HTTPClient
	repos *client.Repositories
}

func newEnv(t *testing.T) *env {
	t.Helper()
	api := apitest.New(t)
	hc, err := client.NewHTTPClient(api.URL(), &http.Client{Timeout: 2 * time.Second}, nil)
	require.NoError(t, err)

	repos, err := client.OpenRepositories(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	return &env{api: api, http: hc, repos: repos}
}

func next[T any](t *testing.T, ch <-chan live.Update[T]) live.Update[T] {
	t.Helper()
	select {
	case u, ok := <-ch:
		require.True(t, ok, "stream closed")
		return u
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for update")
	}
	return live.Update[T]{}
}

func ptr(s string) *string { return &s }
