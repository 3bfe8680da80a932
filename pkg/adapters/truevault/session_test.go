package truevault

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvault-go/tvault/pkg/core"
)

func TestGetSessionByID_Found(t *testing.T) {
	f, client := newFakeVault(t)
	f.put(t, "storage-1", map[string]any{"sid": "abc", "user": "ada"})
	f.put(t, "storage-2", map[string]any{"sid": "other"})

	sess, err := client.GetSessionByID(context.Background(), "abc")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "storage-1", sess.ID, "id must be the storage id, not the sid")
	assert.Equal(t, map[string]any{"sid": "abc", "user": "ada"}, sess.Data)
}

func TestGetSessionByID_SearchOption(t *testing.T) {
	f, client := newFakeVault(t)

	_, err := client.GetSessionByID(context.Background(), "abc")
	require.NoError(t, err)

	reqs := f.recorded(http.MethodPost)
	require.Len(t, reqs, 1)
	assert.Equal(t, "/v1/vaults/vault-1/search", reqs[0].Path)

	raw, err := base64.StdEncoding.DecodeString(reqs[0].Form.Get("search_option"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"filter": {"sid": {"type": "eq", "value": "abc"}},
		"full_document": true,
		"schema_id": "session-schema"
	}`, string(raw))
}

func TestGetSessionByID_NoSessionSchema(t *testing.T) {
	client, err := New(Config{APIKey: "k", VaultID: "v", DocumentSchemaID: "d"})
	require.NoError(t, err)

	raw, err := json.Marshal(client.sessionSearch("abc"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "schema_id")
}

func TestGetSessionByID_NotFound(t *testing.T) {
	f, client := newFakeVault(t)
	f.put(t, "storage-1", map[string]any{"sid": "abc"})

	sess, err := client.GetSessionByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestGetSessionByID_FirstMatchWins(t *testing.T) {
	f, client := newFakeVault(t)
	f.put(t, "storage-b", map[string]any{"sid": "dup", "n": 2})
	f.put(t, "storage-a", map[string]any{"sid": "dup", "n": 1})

	sess, err := client.GetSessionByID(context.Background(), "dup")
	require.NoError(t, err)
	assert.Equal(t, "storage-a", sess.ID)
}

func TestGetSessionByID_BadResponses(t *testing.T) {
	cases := map[string]struct {
		body  string
		check func(t *testing.T, err error)
	}{
		"missing data": {
			body: `{"result":"success"}`,
			check: func(t *testing.T, err error) {
				var pe *ParseError
				assert.True(t, errors.As(err, &pe))
			},
		},
		"not json": {
			body: `<html>`,
			check: func(t *testing.T, err error) {
				var pe *ParseError
				assert.True(t, errors.As(err, &pe))
			},
		},
		"match without success": {
			body: `{"result":"error","data":{"documents":[{"document_id":"x","document":"e30="}]}}`,
			check: func(t *testing.T, err error) {
				var se *SearchError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, "error", se.Result)
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			client := newStaticClient(t, tc.body)
			sess, err := client.GetSessionByID(context.Background(), "abc")
			assert.Nil(t, sess)
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestSaveSession_Insert(t *testing.T) {
	f, client := newFakeVault(t)

	id, err := client.SaveSession(context.Background(), map[string]any{"sid": "new"}, "")
	require.NoError(t, err)
	assert.Equal(t, "doc-001", id)

	reqs := f.recorded("")
	require.Len(t, reqs, 1, "insert must not search first")
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, testSessionSchema, reqs[0].Form.Get("schema_id"))
}

func TestSaveSession_UpdateTargetsStorageID(t *testing.T) {
	f, client := newFakeVault(t)
	ctx := context.Background()
	f.put(t, "storage-9", map[string]any{"sid": "abc", "count": 1})

	id, err := client.SaveSession(ctx, map[string]any{"sid": "abc", "count": 2}, "abc")
	require.NoError(t, err)
	assert.Equal(t, "storage-9", id)

	puts := f.recorded(http.MethodPut)
	require.Len(t, puts, 1)
	assert.Equal(t, "/v1/vaults/vault-1/documents/storage-9", puts[0].Path)

	sess, err := client.GetSessionByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, json.Number("2"), sess.Data.(map[string]any)["count"])
}

func TestSaveSession_UnknownSID(t *testing.T) {
	f, client := newFakeVault(t)

	_, err := client.SaveSession(context.Background(), map[string]any{"sid": "ghost"}, "ghost")
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
	assert.Empty(t, f.recorded(http.MethodPut))
}

func TestSaveSession_LookupFailureIsWrapped(t *testing.T) {
	f, client := newFakeVault(t)
	f.failOn("/search")

	_, err := client.SaveSession(context.Background(), map[string]any{}, "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `update session "abc"`)

	var te *TransportError
	assert.True(t, errors.As(err, &te))
}

func TestRemoveSessionByID(t *testing.T) {
	f, client := newFakeVault(t)
	ctx := context.Background()
	f.put(t, "storage-1", map[string]any{"sid": "abc"})

	removed, err := client.RemoveSessionByID(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, f.recorded(http.MethodDelete))

	removed, err = client.RemoveSessionByID(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, removed)

	deletes := f.recorded(http.MethodDelete)
	require.Len(t, deletes, 1)
	assert.Equal(t, "/v1/vaults/vault-1/documents/storage-1", deletes[0].Path)
	assert.Zero(t, f.count())
}

func TestRemoveSessionByID_LookupFailure(t *testing.T) {
	f, client := newFakeVault(t)
	f.failOn("/search")

	removed, err := client.RemoveSessionByID(context.Background(), "abc")
	assert.False(t, removed)
	assert.Error(t, err)
}

func TestClient_AsSessionRepository(t *testing.T) {
	_, client := newFakeVault(t)
	ctx := context.Background()
	var repo core.SessionRepository = client

	_, err := repo.SaveSession(ctx, map[string]any{"sid": "s1"}, "")
	require.NoError(t, err)

	sess, err := repo.GetSession(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sess)

	removed, err := repo.RemoveSession(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, removed)
}
