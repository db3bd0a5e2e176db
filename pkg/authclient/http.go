package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPSession talks to the employee-management API over HTTP. It implements
// the Session interface consumed by Store.
type HTTPSession struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSession constructs an HTTPSession. httpClient may be nil.
func NewHTTPSession(baseURL string, httpClient *http.Client) *HTTPSession {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPSession{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (s *HTTPSession) Login(ctx context.Context, email, password string) (TokenPair, error) {
	var data struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	err := s.post(ctx, "/api/user-login", map[string]string{
		"email":    email,
		"password": password,
	}, &data)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: data.AccessToken, RefreshToken: data.RefreshToken}, nil
}

func (s *HTTPSession) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var data struct {
		AccessToken string `json:"accessToken"`
	}
	err := s.post(ctx, "/api/user-refresh-token", map[string]string{
		"incomingRefreshToken": refreshToken,
	}, &data)
	if err != nil {
		return "", err
	}
	return data.AccessToken, nil
}

func (s *HTTPSession) Logout(ctx context.Context, userID string) error {
	return s.post(ctx, "/api/user-logout", map[string]string{"userId": userID}, nil)
}

func (s *HTTPSession) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s: decode response: %w", path, err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return fmt.Errorf("%s: %s (status %d)", path, env.Message, resp.StatusCode)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s: decode data: %w", path, err)
		}
	}
	return nil
}
