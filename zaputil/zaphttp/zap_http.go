package zaphttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Get makes a GET request to the given URL and endpoint and unmarshals the
// response body into the given type.
func Get[K any](ctx context.Context, client *http.Client, url, endpoint string) (*K, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return unmarshalResponse[K](resp)
}

// Post makes a POST request with a JSON-encoded body to the given URL and
// endpoint and unmarshals the response body into the given type.
func Post[K any](ctx context.Context, client *http.Client, url, endpoint string, body any) (*K, error) {
	encodedBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+endpoint, bytes.NewReader(encodedBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return unmarshalResponse[K](resp)
}

func unmarshalResponse[K any](resp *http.Response) (*K, error) {
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code (%d): %s", resp.StatusCode, responseBody)
	}

	var unmarshalledData K
	if err := json.Unmarshal(responseBody, &unmarshalledData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal: %w", err)
	}

	return &unmarshalledData, nil
}
