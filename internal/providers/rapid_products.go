package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/you/go-clonar-search/internal/config"
)

type RapidProducts struct {
	host        string
	path        string
	rapidApiKey string
	client      *http.Client
}

func NewRapidProducts(cfg *config.Config) *RapidProducts {
	return &RapidProducts{host: cfg.RapidProductsHost,
		path:        "/search",
		rapidApiKey: cfg.RapidProductsRapidApiKey,
		client:      http.DefaultClient,
	}
}

func (r *RapidProducts) Name() string {
	return "rapid-products"
}

func (r *RapidProducts) FieldType() FieldType { return FieldProduct }

func (r *RapidProducts) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	if r.rapidApiKey == "" {
		return nil, fmt.Errorf("rapid products: missing API key")
	}

	u := url.URL{
		Scheme: "https",
		Host:   r.host,
		Path:   r.path,
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("country", "us")
	q.Set("language", "en")
	q.Set("page", "1")
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	req.Header.Set("X-RapidAPI-Key", r.rapidApiKey)
	req.Header.Set("X-RapidAPI-Host", r.host)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("rapid products: %s", resp.Status)
	}

	var payload struct {
		Status string `json:"status"`
		Data   struct {
			Products []struct {
				ProductTitle string `json:"product_title"`
				ProductURL   string `json:"product_url"`
				ProductPhoto string `json:"product_photo"`
				Offer        struct {
					Price     string `json:"price"`
					StoreName string `json:"store_name"`
				} `json:"offer"`
				ProductRating     float64 `json:"product_rating"`
				ProductNumReviews int     `json:"product_num_reviews"`
			} `json:"products"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("rapid products: status %s", payload.Status)
	}

	var out []Result
	for _, p := range payload.Data.Products {
		if p.ProductTitle == "" {
			continue
		}
		out = append(out, Result{
			Provider:  r.Name(),
			Title:     p.ProductTitle,
			Price:     p.Offer.Price,
			NumPrice:  parseDollarPrice(p.Offer.Price),
			Link:      p.ProductURL,
			Source:    p.Offer.StoreName,
			Thumbnail: p.ProductPhoto,
			Rating:    p.ProductRating,
			Reviews:   p.ProductNumReviews,
		})
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}

	return out, nil
}

// parseDollarPrice turns strings like "$89.99" or "89.99" into a float;
// anything unparseable yields 0 (treated as "price unknown" downstream).
func parseDollarPrice(s string) float64 {
	cleaned := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			cleaned = append(cleaned, r)
		}
	}
	v, _ := strconv.ParseFloat(string(cleaned), 64)
	return v
}
