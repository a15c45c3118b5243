// Package courier provides a client for the Courier task-routing mailbox API.
package courier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is a Courier API client.
type Client struct {
	BaseURL    string
	From       string // participant ID used as the sender on Send/Broadcast
	HTTPClient *http.Client
}

// NewClient creates a new Courier client acting as the given participant.
func NewClient(baseURL, from string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &Client{
		BaseURL:    baseURL,
		From:       from,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// doRequest performs an HTTP request.
func (c *Client) doRequest(method, path string, body []byte) (int, []byte, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		json.Unmarshal(respBody, &errResp)
		return resp.StatusCode, nil, fmt.Errorf("courier error %d: %s", resp.StatusCode, errResp.Error)
	}

	return resp.StatusCode, respBody, nil
}

// Message is a routed message as returned by the API.
type Message struct {
	ID        string         `json:"id"`
	From      string         `json:"from"`
	To        string         `json:"to"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp int64          `json:"ts"`
}

// sendRequest is the request body for send and broadcast.
type sendRequest struct {
	From    string         `json:"from"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// SendResponse is the response from a point-to-point send.
type SendResponse struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
}

// Send routes a message to a single recipient.
func (c *Client) Send(to, msgType string, payload map[string]any) (*SendResponse, error) {
	body, err := json.Marshal(sendRequest{From: c.From, Type: msgType, Payload: payload})
	if err != nil {
		return nil, err
	}

	_, respBody, err := c.doRequest("POST", "/send/"+url.PathEscape(to), body)
	if err != nil {
		return nil, err
	}

	var resp SendResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BroadcastResponse is the response from a broadcast.
type BroadcastResponse struct {
	BroadcastID string `json:"broadcast_id"`
	Delivered   int    `json:"delivered"`
}

// Broadcast routes a message to every participant except the sender.
func (c *Client) Broadcast(msgType string, payload map[string]any) (*BroadcastResponse, error) {
	body, err := json.Marshal(sendRequest{From: c.From, Type: msgType, Payload: payload})
	if err != nil {
		return nil, err
	}

	_, respBody, err := c.doRequest("POST", "/broadcast", body)
	if err != nil {
		return nil, err
	}

	var resp BroadcastResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Next polls the client's inbox for the oldest undelivered message.
// It returns (nil, nil) when the inbox is empty.
func (c *Client) Next() (*Message, error) {
	status, respBody, err := c.doRequest("POST", "/inbox/"+url.PathEscape(c.From)+"/next", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		return nil, nil
	}

	var msg Message
	if err := json.Unmarshal(respBody, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// InboxResponse is the non-destructive inbox view.
type InboxResponse struct {
	Participant string   `json:"participant"`
	Pending     int      `json:"pending"`
	Head        *Message `json:"head,omitempty"`
}

// Inbox returns the client's queue depth and the next message without
// consuming it.
func (c *Client) Inbox() (*InboxResponse, error) {
	_, respBody, err := c.doRequest("GET", "/inbox/"+url.PathEscape(c.From), nil)
	if err != nil {
		return nil, err
	}

	var resp InboxResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParticipantInfo is one participant in the list response.
type ParticipantInfo struct {
	ID      string `json:"id"`
	Pending int    `json:"pending"`
}

// ParticipantListResponse is the participants list response.
type ParticipantListResponse struct {
	Participants []ParticipantInfo `json:"participants"`
	Total        int               `json:"total"`
}

// Participants lists the router's membership with queue depths.
func (c *Client) Participants() (*ParticipantListResponse, error) {
	_, respBody, err := c.doRequest("GET", "/participants", nil)
	if err != nil {
		return nil, err
	}

	var resp ParticipantListResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LogResponse is a window of the audit log.
type LogResponse struct {
	Messages []Message `json:"messages"`
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

// Log fetches a window of the audit log, oldest first.
func (c *Client) Log(limit, offset int) (*LogResponse, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	path := "/log"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	_, respBody, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, err
	}

	var resp LogResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StatsResponse is the routing statistics response.
type StatsResponse struct {
	TotalParticipants int            `json:"total_participants"`
	TotalMessages     int            `json:"total_messages"`
	TotalPending      int            `json:"total_pending"`
	MessagesByType    map[string]int `json:"messages_by_type"`
	LastActivity      string         `json:"last_activity"`
}

// Stats fetches routing statistics.
func (c *Client) Stats() (*StatsResponse, error) {
	_, respBody, err := c.doRequest("GET", "/stats", nil)
	if err != nil {
		return nil, err
	}

	var resp StatsResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Health checks server health.
func (c *Client) Health() (*HealthResponse, error) {
	_, respBody, err := c.doRequest("GET", "/health", nil)
	if err != nil {
		return nil, err
	}

	var resp HealthResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
