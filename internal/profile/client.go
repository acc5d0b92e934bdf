package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"direct-chat-service/internal/models"
)

var ErrProfileNotFound = errors.New("user profile not found")

// Client is the user-service collaborator: profile lookup plus best-effort
// chat-list bookkeeping on the user documents.
type Client interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (models.UserProfile, error)
	GetProfiles(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]models.UserProfile, error)
	AddChatForUsers(ctx context.Context, chatID uuid.UUID, userIDs []uuid.UUID) error
	RemoveChatForUsers(ctx context.Context, chatID uuid.UUID, userIDs []uuid.UUID) error
}

// HTTPClient talks to the user service over its internal JSON API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient constructs the client.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// GetProfile retrieves one user profile.
func (c *HTTPClient) GetProfile(ctx context.Context, userID uuid.UUID) (models.UserProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/internal/users/"+userID.String()+"/profile", nil)
	if err != nil {
		return models.UserProfile{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return models.UserProfile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.UserProfile{}, ErrProfileNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return models.UserProfile{}, fmt.Errorf("user service returned %d", resp.StatusCode)
	}

	var p models.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return models.UserProfile{}, err
	}
	return p, nil
}

// GetProfiles fetches multiple profiles in one call, keyed by user id. Missing
// users are simply absent from the map.
func (c *HTTPClient) GetProfiles(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]models.UserProfile, error) {
	result := make(map[uuid.UUID]models.UserProfile, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var out struct {
		Profiles []models.UserProfile `json:"profiles"`
	}
	if err := c.post(ctx, "/internal/users/profiles", map[string]any{"ids": userIDs}, &out); err != nil {
		return nil, err
	}
	for _, p := range out.Profiles {
		result[p.ID] = p
	}
	return result, nil
}

// AddChatForUsers appends the chat id to each user's chat list.
func (c *HTTPClient) AddChatForUsers(ctx context.Context, chatID uuid.UUID, userIDs []uuid.UUID) error {
	return c.post(ctx, "/internal/users/chats/add", map[string]any{
		"chat_id":  chatID,
		"user_ids": userIDs,
	}, nil)
}

// RemoveChatForUsers removes the chat id from each user's chat list.
func (c *HTTPClient) RemoveChatForUsers(ctx context.Context, chatID uuid.UUID, userIDs []uuid.UUID) error {
	return c.post(ctx, "/internal/users/chats/remove", map[string]any{
		"chat_id":  chatID,
		"user_ids": userIDs,
	}, nil)
}

func (c *HTTPClient) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("user service returned %d for %s", resp.StatusCode, path)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
