package sampleserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Wyydra/calling/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresOn string `json:"expiresOn"`
	User      struct {
		CommunicationUserID string `json:"communicationUserId"`
		RawID               string `json:"rawId"`
	} `json:"user"`
}

type createRoomResponse struct {
	ID string `json:"id"`
}

type addUserRequest struct {
	UserID string `json:"userId"`
	RoomID string `json:"roomId"`
	Role   string `json:"role"`
}

// Client talks to the companion server that issues tokens and manages rooms.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// IssueCredentials fetches a fresh token and the identity it was issued for.
func (c *Client) IssueCredentials(ctx context.Context) (domain.Credentials, error) {
	body, err := c.do(ctx, http.MethodGet, "/token", nil)
	if err != nil {
		return domain.Credentials{}, err
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Credentials{}, fmt.Errorf("unmarshal token response: %w", err)
	}
	if resp.Token == "" {
		return domain.Credentials{}, fmt.Errorf("invalid token response: empty token")
	}

	userID := resp.User.CommunicationUserID
	if userID == "" {
		userID = resp.User.RawID
	}

	return domain.Credentials{
		Token:     resp.Token,
		ExpiresOn: expiry(resp.ExpiresOn, resp.Token),
		User:      domain.ParseIdentity(userID),
	}, nil
}

// expiry prefers the server's expiresOn and falls back to the token's exp claim.
func expiry(expiresOn, token string) time.Time {
	if t, err := time.Parse(time.RFC3339, expiresOn); err == nil {
		return t
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// CreateRoom provisions a new room and returns its id.
func (c *Client) CreateRoom(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/createRoom", nil)
	if err != nil {
		return "", err
	}

	var resp createRoomResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		// older servers answer with the bare id
		return strings.Trim(strings.TrimSpace(string(body)), `"`), nil
	}
	return resp.ID, nil
}

// AddUserToRoom registers userID as a participant of roomID.
func (c *Client) AddUserToRoom(ctx context.Context, userID, roomID string, role domain.Role) error {
	req := addUserRequest{
		UserID: userID,
		RoomID: roomID,
		Role:   string(role),
	}
	_, err := c.do(ctx, http.MethodPost, "/addUserToRoom", req)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s request: %w", path, err)
		}
		reader = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create http request: %w", err)
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}
