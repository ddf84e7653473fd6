package websearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/aprenda-ai/tutor/common/httpx"
	"github.com/aprenda-ai/tutor/config"
	"github.com/aprenda-ai/tutor/schema"
)

// Bing queries the Web Search API v7. Endpoint and key come from config;
// both are required.
type Bing struct {
	endpoint string
	apiKey   string
	client   *httpx.Client
}

func NewBing(cfg config.SearchProviderConfig, hcfg *config.HTTPClientConfig) *Bing {
	return &Bing{endpoint: cfg.Endpoint, apiKey: cfg.APIKey, client: httpx.NewFromConfig(hcfg)}
}

func (b *Bing) Name() string { return "bing" }

func (b *Bing) Search(ctx context.Context, query string, max int) ([]schema.CandidateResult, error) {
	if b.endpoint == "" || b.apiKey == "" {
		return nil, errors.New("bing search requires endpoint and api key")
	}
	u, err := url.Parse(b.endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("count", fmt.Sprintf("%d", max))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", b.apiKey)
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError("bing", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	pages := gjson.GetBytes(body, "webPages.value").Array()
	results := make([]schema.CandidateResult, 0, len(pages))
	for _, v := range pages {
		results = append(results, schema.CandidateResult{
			Title:   v.Get("name").String(),
			Snippet: v.Get("snippet").String(),
			Source:  v.Get("displayUrl").String(),
			URL:     v.Get("url").String(),
		})
	}
	return results, nil
}
