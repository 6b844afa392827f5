package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// apiClient is a thin HTTP client for the symptom checker API.
type apiClient struct {
	baseURL string
	client  *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type checkRequest struct {
	Symptoms string `json:"symptoms"`
}

type checkMetadata struct {
	Model      string `json:"model"`
	TokensUsed int    `json:"tokens_used"`
}

type checkResponse struct {
	Success    bool           `json:"success"`
	Analysis   string         `json:"analysis"`
	Disclaimer string         `json:"disclaimer"`
	Metadata   *checkMetadata `json:"metadata"`
	QueryID    int64          `json:"query_id"`
	Error      string         `json:"error"`
}

type queryEntry struct {
	ID        int64  `json:"id"`
	Symptoms  string `json:"symptoms"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

type historyResponse struct {
	Success bool         `json:"success"`
	History []queryEntry `json:"history"`
	Count   int          `json:"count"`
	Error   string       `json:"error"`
}

func (c *apiClient) checkSymptoms(symptoms string) (*checkResponse, error) {
	body, err := json.Marshal(checkRequest{Symptoms: symptoms})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+"/api/check-symptoms", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to reach server at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	var result checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("unexpected response from server (status %d): %w", resp.StatusCode, err)
	}
	if !result.Success {
		if result.Error == "" {
			result.Error = fmt.Sprintf("server returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s", result.Error)
	}
	return &result, nil
}

func (c *apiClient) listHistory(limit int) (*historyResponse, error) {
	u := fmt.Sprintf("%s/api/history?limit=%d", c.baseURL, limit)
	resp, err := c.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to reach server at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result historyResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("unexpected response from server (status %d)", resp.StatusCode)
	}
	if !result.Success {
		if result.Error == "" {
			result.Error = fmt.Sprintf("server returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s", result.Error)
	}
	return &result, nil
}
