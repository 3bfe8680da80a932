package truevault

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
)

const (
	testAPIKey        = "test-key"
	testVaultID       = "vault-1"
	testDocSchema     = "doc-schema"
	testSessionSchema = "session-schema"
	testUserToken     = "user-token"
)

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Form   url.Values
}

// fakeVault is an in-memory stand-in for the TrueVault API.
type fakeVault struct {
	mu       sync.Mutex
	docs     map[string]string // document_id -> base64 payload
	seq      int
	requests []recordedRequest

	// saveResult overrides the result of inserts and updates when set.
	saveResult string
	// failPaths forces a 500 for requests whose path contains any entry.
	failPaths []string
	// hook runs before a request is handled, outside the lock, so it may block.
	hook func(r *http.Request)
}

func newFakeVault(t *testing.T, opts ...Option) (*fakeVault, *Client) {
	t.Helper()
	f := &fakeVault{docs: make(map[string]string)}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithBaseURL(srv.URL + "/v1"), WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	client, err := New(Config{
		APIKey:           testAPIKey,
		VaultID:          testVaultID,
		DocumentSchemaID: testDocSchema,
		SessionSchemaID:  testSessionSchema,
	}, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f, client
}

// put stores payload under id, bypassing the client.
func (f *fakeVault) put(t *testing.T, id string, payload any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[id] = base64.StdEncoding.EncodeToString(raw)
}

func (f *fakeVault) failOn(paths ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPaths = paths
}

func (f *fakeVault) onRequest(fn func(r *http.Request)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hook = fn
}

func (f *fakeVault) rejectSaves(result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveResult = result
}

func (f *fakeVault) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

func (f *fakeVault) recorded(method string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedRequest
	for _, r := range f.requests {
		if method == "" || r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeVault) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	f.mu.Lock()
	hook := f.hook
	f.mu.Unlock()
	if hook != nil {
		hook(r)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Auth:   r.Header.Get("Authorization"),
		Form:   r.PostForm,
	})

	for _, p := range f.failPaths {
		if strings.Contains(r.URL.Path, p) {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
	}

	path := strings.TrimPrefix(r.URL.Path, "/v1/")
	if path == "auth/me" {
		f.serveUser(w, r)
		return
	}

	if r.Header.Get("Authorization") != basicAuth(testAPIKey) {
		http.Error(w, `{"result":"error"}`, http.StatusUnauthorized)
		return
	}

	prefix := "vaults/" + testVaultID + "/"
	if !strings.HasPrefix(path, prefix) {
		http.NotFound(w, r)
		return
	}
	path = strings.TrimPrefix(path, prefix)

	switch {
	case path == "search" && r.Method == http.MethodPost:
		f.serveSearch(w, r)
	case path == "documents" && r.Method == http.MethodPost:
		f.seq++
		f.save(w, r, fmt.Sprintf("doc-%03d", f.seq))
	case strings.HasPrefix(path, "documents/"):
		ids := strings.TrimPrefix(path, "documents/")
		switch r.Method {
		case http.MethodGet:
			f.serveRead(w, r, strings.Split(ids, ","))
		case http.MethodPut:
			if _, ok := f.docs[ids]; !ok {
				http.NotFound(w, r)
				return
			}
			f.save(w, r, ids)
		case http.MethodDelete:
			if _, ok := f.docs[ids]; !ok {
				http.NotFound(w, r)
				return
			}
			delete(f.docs, ids)
			writeJSON(w, map[string]any{"result": "success"})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeVault) save(w http.ResponseWriter, r *http.Request, id string) {
	if f.saveResult != "" {
		writeJSON(w, map[string]any{"result": f.saveResult})
		return
	}
	f.docs[id] = r.PostForm.Get("document")
	writeJSON(w, map[string]any{"result": "success", "document_id": id})
}

func (f *fakeVault) serveRead(w http.ResponseWriter, r *http.Request, ids []string) {
	for _, id := range ids {
		if _, ok := f.docs[id]; !ok {
			http.NotFound(w, r)
			return
		}
	}
	if len(ids) == 1 {
		fmt.Fprint(w, f.docs[ids[0]])
		return
	}
	docs := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, map[string]string{"id": id, "document": f.docs[id]})
	}
	writeJSON(w, map[string]any{"result": "success", "documents": docs})
}

func (f *fakeVault) serveSearch(w http.ResponseWriter, r *http.Request) {
	raw, err := base64.StdEncoding.DecodeString(r.PostForm.Get("search_option"))
	if err != nil {
		http.Error(w, "bad search_option", http.StatusBadRequest)
		return
	}
	var opt searchOption
	if err := json.Unmarshal(raw, &opt); err != nil {
		http.Error(w, "bad search_option", http.StatusBadRequest)
		return
	}
	want := opt.Filter["sid"].Value

	ids := make([]string, 0, len(f.docs))
	for id := range f.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	matches := []map[string]string{}
	for _, id := range ids {
		payload, _ := base64.StdEncoding.DecodeString(f.docs[id])
		var doc map[string]any
		if json.Unmarshal(payload, &doc) != nil {
			continue
		}
		if sid, _ := doc["sid"].(string); sid == want {
			matches = append(matches, map[string]string{"document_id": id, "document": f.docs[id]})
		}
	}
	writeJSON(w, map[string]any{
		"result": "success",
		"data":   map[string]any{"documents": matches},
	})
}

func (f *fakeVault) serveUser(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != testUserToken {
		writeJSON(w, map[string]any{"result": "error"})
		return
	}
	writeJSON(w, map[string]any{
		"result": "success",
		"user": map[string]any{
			"user_id":  "u-1",
			"username": "ada",
			"status":   "ACTIVATED",
		},
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
