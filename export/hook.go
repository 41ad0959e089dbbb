package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Hook posts documents to a visualizer endpoint.
type Hook struct {
	URL    string
	Client *http.Client
}

func NewHook(url string) *Hook {
	return &Hook{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Push sends doc as JSON and fails on any non 2xx answer.
func (h *Hook) Push(ctx context.Context, doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		return fmt.Errorf("push document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push document: unexpected status %s", resp.Status)
	}
	return nil
}
