package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/meridian/salesreport/internal/domain"
)

const (
	// DefaultCatalogURL is the public catalog the legacy tooling enriched from.
	DefaultCatalogURL = "https://dummyjson.com"

	defaultTimeout = 10 * time.Second
	fetchLimit     = 100
)

// Client fetches product metadata from the external catalog API and
// normalizes it into domain.ProductInfo at this boundary, so the enricher
// never branches on the raw response shape.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

// NewClient creates a catalog client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultCatalogURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// apiProduct is the raw catalog entry shape. Price is a pointer so an absent
// list price is distinguishable from zero.
type apiProduct struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Brand    string   `json:"brand"`
	Price    *float64 `json:"price"`
	Rating   float64  `json:"rating"`
}

type apiResponse struct {
	Products []apiProduct `json:"products"`
}

// FetchProductInfo returns catalog info keyed by the requested product ids.
// The result may be a strict subset of the request (misses are allowed). On
// failure the caller should degrade to an empty mapping; the pipeline does
// exactly that and notes it in the enrichment summary.
func (c *Client) FetchProductInfo(ctx context.Context, productIDs []string) (map[string]domain.ProductInfo, error) {
	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, fetchLimit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	byNumericID := make(map[int]apiProduct, len(payload.Products))
	for _, p := range payload.Products {
		byNumericID[p.ID] = p
	}

	mapping := make(map[string]domain.ProductInfo)
	for _, id := range productIDs {
		n, ok := numericID(id)
		if !ok {
			continue
		}
		p, ok := byNumericID[n]
		if !ok {
			continue
		}
		mapping[id] = normalize(id, p)
	}

	c.log.Debug().
		Int("requested", len(productIDs)).
		Int("resolved", len(mapping)).
		Msg("catalog fetch complete")

	return mapping, nil
}

// numericID extracts the catalog key from a sales product id ("P101" -> 101).
func numericID(productID string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(productID, "P"))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func normalize(productID string, p apiProduct) domain.ProductInfo {
	info := domain.ProductInfo{
		ProductID: productID,
		Title:     orUnknown(p.Title),
		Category:  orUnknown(p.Category),
		Supplier:  orUnknown(p.Brand),
		Rating:    p.Rating,
		ListPrice: p.Price,
	}
	return info
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return domain.UnknownField
	}
	return s
}
