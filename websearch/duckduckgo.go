package websearch

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/aprenda-ai/tutor/common/httpx"
	"github.com/aprenda-ai/tutor/config"
	"github.com/aprenda-ai/tutor/schema"
)

const ddgDefaultEndpoint = "https://api.duckduckgo.com/"

// DuckDuckGo queries the Instant Answer API. It needs no key, which makes it
// the default provider.
type DuckDuckGo struct {
	endpoint string
	client   *httpx.Client
}

func NewDuckDuckGo(cfg config.SearchProviderConfig, hcfg *config.HTTPClientConfig) *DuckDuckGo {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = ddgDefaultEndpoint
	}
	return &DuckDuckGo{endpoint: endpoint, client: httpx.NewFromConfig(hcfg)}
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

func (d *DuckDuckGo) Search(ctx context.Context, query string, max int) ([]schema.CandidateResult, error) {
	u, err := url.Parse(d.endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError("duckduckgo", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	results := make([]schema.CandidateResult, 0, max)
	if abstract := gjson.GetBytes(body, "AbstractText").String(); abstract != "" {
		results = append(results, schema.CandidateResult{
			Title:   gjson.GetBytes(body, "Heading").String(),
			Snippet: abstract,
			Source:  gjson.GetBytes(body, "AbstractSource").String(),
			URL:     gjson.GetBytes(body, "AbstractURL").String(),
		})
	}
	for _, rt := range gjson.GetBytes(body, "RelatedTopics").Array() {
		if len(results) >= max {
			break
		}
		text := rt.Get("Text").String()
		first := rt.Get("FirstURL").String()
		if text == "" || first == "" {
			continue
		}
		title := text
		if runes := []rune(title); len(runes) > 100 {
			title = string(runes[:100])
		}
		results = append(results, schema.CandidateResult{
			Title:   title,
			Snippet: text,
			Source:  "DuckDuckGo",
			URL:     first,
		})
	}
	return results, nil
}
