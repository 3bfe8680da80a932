package truevault

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/url"

	"github.com/aretw0/lifecycle"

	"github.com/tvault-go/tvault/pkg/core"
)

const resultSuccess = "success"

// GetDocumentByID returns the decoded payload of a single document.
func (c *Client) GetDocumentByID(ctx context.Context, id string) (any, error) {
	if id == "" {
		return nil, core.ErrEmptyID
	}
	body, err := c.do(ctx, http.MethodGet, c.documentURL(id), c.authHeader, nil)
	if err != nil {
		return nil, err
	}
	return decodePayload("document "+id, string(body))
}

// GetDocumentsByIDs returns the decoded payloads of ids, keyed by id.
//
// The ids are split into contiguous batches of at most MaxBatchSize and all
// batches are requested concurrently. The first failing batch fails the whole
// call and cancels the requests still in flight.
func (c *Client) GetDocumentsByIDs(ctx context.Context, ids []string) (map[string]any, error) {
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("id at position %d: %w", i, core.ErrEmptyID)
		}
	}

	batches := chunk(ids, c.batchSize)
	results := make([]map[string]any, len(batches))

	if c.logger != nil && len(batches) > 0 {
		c.logger.Debug("truevault batched read", "ids", len(ids), "batches", len(batches))
	}

	g, _ := lifecycle.NewGroup(ctx)
	for i, batch := range batches {
		g.Go(func(ctx context.Context) error {
			docs, err := c.getBatch(ctx, batch)
			if err != nil {
				return err
			}
			results[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]any, len(ids))
	for _, docs := range results {
		maps.Copy(merged, docs)
	}
	return merged, nil
}

type batchResponse struct {
	Documents []struct {
		ID       string `json:"id"`
		Document string `json:"document"`
	} `json:"documents"`
}

// getBatch reads one batch. A single-id request is answered with the bare
// base64 payload, a multi-id request with a {"documents": [...]} envelope.
func (c *Client) getBatch(ctx context.Context, ids []string) (map[string]any, error) {
	body, err := c.do(ctx, http.MethodGet, c.documentURL(ids...), c.authHeader, nil)
	if err != nil {
		return nil, err
	}

	if len(ids) == 1 {
		doc, err := decodePayload("document "+ids[0], string(body))
		if err != nil {
			return nil, err
		}
		return map[string]any{ids[0]: doc}, nil
	}

	var resp batchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Op: "documents response", Err: err}
	}

	docs := make(map[string]any, len(resp.Documents))
	for _, d := range resp.Documents {
		doc, err := decodePayload("document "+d.ID, d.Document)
		if err != nil {
			return nil, err
		}
		docs[d.ID] = doc
	}
	return docs, nil
}

// SaveDocument inserts data as a new document when id is empty, or replaces
// the document id otherwise. It returns the id of the stored document.
func (c *Client) SaveDocument(ctx context.Context, data any, id string) (string, error) {
	if id == "" {
		return c.insertDocument(ctx, data, "", http.MethodPost, c.cfg.DocumentSchemaID)
	}
	return c.insertDocument(ctx, data, id, http.MethodPut, c.cfg.DocumentSchemaID)
}

// DeleteDocument removes a document.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	if id == "" {
		return core.ErrEmptyID
	}
	_, err := c.do(ctx, http.MethodDelete, c.documentURL(id), c.authHeader, nil)
	return err
}

type saveResponse struct {
	Result     string `json:"result"`
	DocumentID string `json:"document_id"`
}

// insertDocument is shared by document and session writes.
// method is POST for inserts and PUT for updates of id.
func (c *Client) insertDocument(ctx context.Context, data any, id, method, schemaID string) (string, error) {
	encoded, err := encodePayload(data)
	if err != nil {
		return "", fmt.Errorf("truevault: encode document: %w", err)
	}

	target := c.documentsURL()
	if method == http.MethodPut && id != "" {
		target = c.documentURL(id)
	}

	form := url.Values{"document": {encoded}}
	if schemaID != "" {
		form.Set("schema_id", schemaID)
	}

	body, err := c.do(ctx, method, target, c.authHeader, form)
	if err != nil {
		return "", err
	}

	var resp saveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &ParseError{Op: "save response", Err: err}
	}
	if resp.Result != resultSuccess {
		return "", &SaveError{Result: resp.Result}
	}
	return resp.DocumentID, nil
}

// Get implements core.Repository.
func (c *Client) Get(ctx context.Context, id string) (core.Document, error) {
	data, err := c.GetDocumentByID(ctx, id)
	if err != nil {
		return core.Document{}, err
	}
	return core.Document{ID: id, Data: data}, nil
}

// GetMany implements core.Repository.
func (c *Client) GetMany(ctx context.Context, ids []string) (map[string]core.Document, error) {
	payloads, err := c.GetDocumentsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	docs := make(map[string]core.Document, len(payloads))
	for id, data := range payloads {
		docs[id] = core.Document{ID: id, Data: data}
	}
	return docs, nil
}

// Save implements core.Repository.
func (c *Client) Save(ctx context.Context, data any, id string) (string, error) {
	return c.SaveDocument(ctx, data, id)
}

// Delete implements core.Repository.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.DeleteDocument(ctx, id)
}
