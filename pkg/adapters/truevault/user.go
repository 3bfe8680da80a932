package truevault

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tvault-go/tvault/pkg/core"
)

type userResponse struct {
	Result string     `json:"result"`
	User   *core.User `json:"user"`
}

// GetUser resolves accessToken through the auth/me endpoint.
// The token is sent as the Authorization header verbatim.
//
// A response whose result is not "success" is not an error: the result code is
// returned in UserResult.Result and UserResult.User is nil.
func (c *Client) GetUser(ctx context.Context, accessToken string) (core.UserResult, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+"auth/me", accessToken, nil)
	if err != nil {
		return core.UserResult{}, err
	}

	var resp userResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return core.UserResult{}, &ParseError{Op: "user response", Err: err}
	}
	if resp.Result != resultSuccess {
		return core.UserResult{Result: resp.Result}, nil
	}
	if resp.User == nil {
		return core.UserResult{}, &ParseError{Op: "user response", Err: errors.New("missing user")}
	}
	return core.UserResult{User: resp.User, Result: resp.Result}, nil
}
