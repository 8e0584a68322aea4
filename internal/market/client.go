package market

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Pokémon TCG API v2 客户端。上游有限流，调用方必须经过PriceCache。

// ErrCardNotFound 上游没有该卡牌
var ErrCardNotFound = fmt.Errorf("card not found in upstream api")

type Client struct {
	base       string
	apiKey     string
	httpClient *http.Client
}

// NewClient base形如 https://api.pokemontcg.io/v2，apiKey可为空
func NewClient(base, apiKey string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", base)
	}
	return &Client{
		base:       strings.TrimRight(parsed.String(), "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type cardEnvelope struct {
	Data *Card `json:"data"`
}

type cardListEnvelope struct {
	Data       []*Card `json:"data"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalCount int     `json:"totalCount"`
}

// FetchCard 拉取单张卡牌 GET /cards/{id}
func (c *Client) FetchCard(ctx context.Context, cardId string) (*Card, error) {
	cid := strings.TrimSpace(cardId)
	if cid == "" {
		return nil, ErrCardNotFound
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/cards/"+url.PathEscape(cid), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCardNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK HTTP status: %s", resp.Status)
	}

	byteData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	var envelope cardEnvelope
	if err := json.Unmarshal(byteData, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if envelope.Data == nil {
		return nil, ErrCardNotFound
	}
	return envelope.Data, nil
}

// FetchSetCards 分页拉取整个系列的卡牌（种子落库使用）GET /cards?q=set.id:{id}
func (c *Client) FetchSetCards(ctx context.Context, setId string, page, pageSize int) ([]*Card, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 250 {
		pageSize = 250
	}
	q := url.Values{}
	q.Set("q", fmt.Sprintf("set.id:%s", setId))
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("pageSize", fmt.Sprintf("%d", pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/cards?"+q.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("received non-OK HTTP status: %s", resp.Status)
	}
	byteData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}
	var envelope cardListEnvelope
	if err := json.Unmarshal(byteData, &envelope); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return envelope.Data, envelope.TotalCount, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cardpulse/1.0")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
}
