package truevault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tvault-go/tvault/pkg/core"
)

type searchFilter struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type searchOption struct {
	Filter       map[string]searchFilter `json:"filter"`
	FullDocument bool                    `json:"full_document"`
	SchemaID     string                  `json:"schema_id,omitempty"`
}

type searchResponse struct {
	Result string `json:"result"`
	Data   *struct {
		Documents []struct {
			DocumentID string `json:"document_id"`
			Document   string `json:"document"`
		} `json:"documents"`
	} `json:"data"`
}

// sessionSearch builds the search option matching payloads whose sid equals sid.
func (c *Client) sessionSearch(sid string) searchOption {
	return searchOption{
		Filter: map[string]searchFilter{
			core.SessionIDKey: {Type: "eq", Value: sid},
		},
		FullDocument: true,
		SchemaID:     c.cfg.SessionSchemaID,
	}
}

// GetSessionByID finds the session document whose payload carries sid.
// It returns nil without error when no document matches. When several
// documents match, the first one returned by the search wins.
func (c *Client) GetSessionByID(ctx context.Context, sid string) (*core.SessionDocument, error) {
	encoded, err := encodePayload(c.sessionSearch(sid))
	if err != nil {
		return nil, fmt.Errorf("truevault: encode search option: %w", err)
	}

	form := url.Values{"search_option": {encoded}}
	body, err := c.do(ctx, http.MethodPost, c.dbURL+"/search", c.authHeader, form)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Op: "search response", Err: err}
	}
	if resp.Data == nil {
		return nil, &ParseError{Op: "search response", Err: errors.New("missing data")}
	}
	if len(resp.Data.Documents) == 0 {
		return nil, nil
	}
	if resp.Result != resultSuccess {
		return nil, &SearchError{Result: resp.Result}
	}

	first := resp.Data.Documents[0]
	data, err := decodePayload("session "+sid, first.Document)
	if err != nil {
		return nil, err
	}
	return &core.SessionDocument{ID: first.DocumentID, Data: data}, nil
}

// SaveSession inserts data as a new session document when sid is empty.
// Otherwise the session currently stored under sid is resolved and replaced;
// core.ErrSessionNotFound is returned when sid matches nothing.
func (c *Client) SaveSession(ctx context.Context, data any, sid string) (string, error) {
	if sid == "" {
		return c.insertDocument(ctx, data, "", http.MethodPost, c.cfg.SessionSchemaID)
	}

	sess, err := c.GetSessionByID(ctx, sid)
	if err != nil {
		return "", fmt.Errorf("truevault: update session %q: %w", sid, err)
	}
	if sess == nil {
		return "", fmt.Errorf("truevault: update session %q: %w", sid, core.ErrSessionNotFound)
	}
	return c.insertDocument(ctx, data, sess.ID, http.MethodPut, c.cfg.SessionSchemaID)
}

// RemoveSessionByID deletes the session document stored under sid.
// It reports false without error when sid matches nothing.
func (c *Client) RemoveSessionByID(ctx context.Context, sid string) (bool, error) {
	sess, err := c.GetSessionByID(ctx, sid)
	if err != nil {
		return false, err
	}
	if sess == nil {
		return false, nil
	}
	if err := c.DeleteDocument(ctx, sess.ID); err != nil {
		return false, err
	}
	return true, nil
}

// GetSession implements core.SessionRepository.
func (c *Client) GetSession(ctx context.Context, sid string) (*core.SessionDocument, error) {
	return c.GetSessionByID(ctx, sid)
}

// RemoveSession implements core.SessionRepository.
func (c *Client) RemoveSession(ctx context.Context, sid string) (bool, error) {
	return c.RemoveSessionByID(ctx, sid)
}
