package platform

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvault-go/tvault/pkg/adapters/memory"
	"github.com/tvault-go/tvault/pkg/adapters/truevault"
)

func TestInit_TrueVault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/vaults/v/documents/d1", r.URL.Path)
		fmt.Fprint(w, base64.StdEncoding.EncodeToString([]byte(`{"ok":true}`)))
	}))
	t.Cleanup(srv.Close)

	cfg := Config{APIKey: "k", VaultID: "v", DocumentSchemaID: "d", BaseURL: "http://unused.invalid/"}
	svc, err := New(cfg, WithBaseURL(srv.URL+"/api/v1"), WithBatchSize(10))
	require.NoError(t, err)

	client, ok := svc.Repository().(*truevault.Client)
	require.True(t, ok)
	assert.Equal(t, 10, client.State().(truevault.ClientState).BatchSize)

	doc, err := svc.GetDocument(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, doc.Data)
}

func TestInit_InvalidConfig(t *testing.T) {
	_, err := Init(Config{})
	assert.ErrorIs(t, err, truevault.ErrInvalidConfig)

	_, err = Init(Config{APIKey: "k", VaultID: "v", DocumentSchemaID: "d"}, WithBatchSize(1000))
	assert.ErrorIs(t, err, truevault.ErrInvalidConfig)
}

func TestInit_Adapters(t *testing.T) {
	repo, err := Init(Config{Adapter: AdapterMemory})
	require.NoError(t, err)
	assert.IsType(t, &memory.Repository{}, repo)

	repo, err = Init(Config{}, WithAdapter(AdapterMemory))
	require.NoError(t, err)
	assert.IsType(t, &memory.Repository{}, repo)

	_, err = Init(Config{}, WithAdapter("s3"))
	assert.EqualError(t, err, "unknown adapter: s3")
}

func TestInit_InjectedRepository(t *testing.T) {
	injected := memory.NewRepository()
	repo, err := Init(Config{}, WithRepository(injected))
	require.NoError(t, err)
	assert.Same(t, injected, repo)
}
