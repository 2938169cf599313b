package pretalx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"confprogram/internal/domain"
)

// page is one page of a paginated Pretalx list response.
type page struct {
	Count   int               `json:"count"`
	Next    *string           `json:"next"`
	Results []json.RawMessage `json:"results"`
}

type pretalxHTTPSource struct {
	client  *http.Client
	baseURL string
	token   string
	event   string
}

// NewHTTPSource returns a ProgramSource that calls the Pretalx REST API
// for one event. The token may be empty for public events.
func NewHTTPSource(client *http.Client, baseURL, token, event string) domain.ProgramSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &pretalxHTTPSource{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		event:   event,
	}
}

func (s *pretalxHTTPSource) Submissions(ctx context.Context) ([]json.RawMessage, error) {
	return s.fetchAll(ctx, "submissions")
}

func (s *pretalxHTTPSource) Speakers(ctx context.Context) ([]json.RawMessage, error) {
	return s.fetchAll(ctx, "speakers")
}

func (s *pretalxHTTPSource) Schedule(ctx context.Context) (json.RawMessage, error) {
	body, err := s.get(ctx, fmt.Sprintf("%s/events/%s/schedules/latest/", s.baseURL, s.event))
	if err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}
	return json.RawMessage(body), nil
}

// fetchAll follows the next links of a paginated listing and accumulates
// the raw result items. Any failed page aborts the fetch.
func (s *pretalxHTTPSource) fetchAll(ctx context.Context, resource string) ([]json.RawMessage, error) {
	url := fmt.Sprintf("%s/events/%s/%s/", s.baseURL, s.event, resource)
	results := make([]json.RawMessage, 0)
	for url != "" {
		body, err := s.get(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", resource, err)
		}
		var p page
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("decode %s page: %w", resource, err)
		}
		results = append(results, p.Results...)
		url = ""
		if p.Next != nil {
			url = *p.Next
		}
	}
	return results, nil
}

func (s *pretalxHTTPSource) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/javascript")
	if s.token != "" {
		req.Header.Set("Authorization", "Token "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from pretalx: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pretalx api returned status: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
