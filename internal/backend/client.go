// Package backend is the HTTP client for the remote persona generation
// service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/synthpanel/internal/concept"
	"github.com/MikeSquared-Agency/synthpanel/internal/evaluator"
)

const (
	chatPath   = "/api/synthetic/chat"
	healthPath = "/health"
)

type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a client for baseURL. An empty token sends no
// Authorization header.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// HistoryMessage is one prior turn of the conversation.
type HistoryMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest is the body of a remote generation call.
type ChatRequest struct {
	UserMessage         string                     `json:"user_message"`
	Archetype           string                     `json:"archetype"`
	EvaluationContext   *evaluator.SegmentReaction `json:"evaluation_context,omitempty"`
	ConceptDetails      *concept.Concept           `json:"concept_details,omitempty"`
	ConversationHistory []HistoryMessage           `json:"conversation_history"`
	CreativityLevel     int                        `json:"creativity_level"`
	Temperature         float64                    `json:"temperature"`
	Language            string                     `json:"language"`
	CulturalContext     string                     `json:"cultural_context"`
}

type chatResponse struct {
	Success  *bool  `json:"success,omitempty"`
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Temperature maps a 0-100 creativity level to the 0.0-1.0 range the
// remote side expects.
func Temperature(creativity int) float64 {
	return float64(min(max(creativity, 0), 100)) / 100
}

// Chat sends req and returns the generated reply. Transport failures,
// non-2xx statuses, success:false and empty replies are all errors.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if req.Language == "" {
		req.Language = "es"
	}
	if req.CulturalContext == "" {
		req.CulturalContext = "honduras"
	}
	req.Temperature = Temperature(req.CreativityLevel)
	if req.ConversationHistory == nil {
		req.ConversationHistory = []HistoryMessage{}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp chatResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return "", fmt.Errorf("chat error %d: %s", resp.StatusCode, errResp.Error)
		}
		return "", fmt.Errorf("chat error %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if chatResp.Success != nil && !*chatResp.Success {
		return "", fmt.Errorf("chat unsuccessful: %s", chatResp.Error)
	}
	if strings.TrimSpace(chatResp.Response) == "" {
		return "", fmt.Errorf("empty response")
	}
	return chatResp.Response, nil
}

// Health checks the remote health endpoint. Any non-2xx status is an error.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("health call: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("health status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
