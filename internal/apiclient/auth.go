package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// LoginResult is the identity and bearer token returned by /auth/login
type LoginResult struct {
	ID    string
	Name  string
	Email string
	Role  string
	Token string
}

// Login calls POST /auth/login. The token is read from accessToken,
// access_token or token, at the top of data or inside data.user.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body, err := jsonBody(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	var out envelope[map[string]any]
	req := request{method: http.MethodPost, path: "/auth/login", body: body, contentType: "application/json"}
	if err := do(ctx, c, req, &out); err != nil {
		return nil, err
	}

	data := out.Data
	user, _ := data["user"].(map[string]any)

	result := &LoginResult{
		Token: firstString([]map[string]any{data, user}, "accessToken", "access_token", "token"),
		ID:    firstString([]map[string]any{user, data}, "id", "user_id"),
		Name:  firstString([]map[string]any{user, data}, "name", "full_name", "username"),
		Email: firstString([]map[string]any{user, data}, "email"),
		Role:  firstString([]map[string]any{user, data}, "role"),
	}
	if result.Email == "" {
		result.Email = email
	}
	if result.Token == "" {
		return nil, &APIError{StatusCode: http.StatusUnauthorized, Message: "Login succeeded but no access token was returned."}
	}
	return result, nil
}

func firstString(sources []map[string]any, keys ...string) string {
	for _, src := range sources {
		if src == nil {
			continue
		}
		for _, k := range keys {
			switch v := src[k].(type) {
			case string:
				if v != "" {
					return v
				}
			case float64:
				return fmt.Sprintf("%.0f", v)
			case json.Number:
				return v.String()
			}
		}
	}
	return ""
}
