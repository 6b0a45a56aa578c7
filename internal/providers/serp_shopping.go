package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/you/go-clonar-search/internal/config"
)

type SerpShopping struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewSerpShopping(cfg *config.Config) *SerpShopping {
	return &SerpShopping{
		endpoint: cfg.SerpAPIEndpoint,
		apiKey:   cfg.SerpAPIKey,
		client:   http.DefaultClient,
	}
}

func (s *SerpShopping) Name() string { return "serpapi-shopping" }

func (s *SerpShopping) FieldType() FieldType { return FieldProduct }

func (s *SerpShopping) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	if s.apiKey == "" {
		return nil, errors.New("serpapi key missing")
	}

	q := url.Values{}
	q.Set("engine", "google_shopping")
	q.Set("q", query)
	q.Set("hl", "en")
	q.Set("gl", "us")
	q.Set("api_key", s.apiKey)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+q.Encode(), nil)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		// never forward the full SerpAPI dump
		return nil, fmt.Errorf("serpapi shopping: %s", resp.Status)
	}

	var payload struct {
		ShoppingResults []struct {
			Title             string  `json:"title"`
			Price             string  `json:"price"`
			ExtractedPrice    float64 `json:"extracted_price"`
			ExtractedPriceOld float64 `json:"extracted_price_old"`
			Link              string  `json:"link"`
			ProductLink       string  `json:"product_link"`
			Source            string  `json:"source"`
			Thumbnail         string  `json:"thumbnail"`
			Tag               string  `json:"tag"`
			Delivery          string  `json:"delivery"`
			Rating            float64 `json:"rating"`
			Reviews           int     `json:"reviews"`
		} `json:"shopping_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	var out []Result
	for _, item := range payload.ShoppingResults {
		link := item.Link
		if link == "" {
			link = item.ProductLink
		}
		out = append(out, Result{
			Provider:  s.Name(),
			Title:     item.Title,
			Price:     item.Price,
			NumPrice:  item.ExtractedPrice,
			OldPrice:  item.ExtractedPriceOld,
			Link:      link,
			Source:    item.Source,
			Thumbnail: item.Thumbnail,
			Tag:       item.Tag,
			Delivery:  item.Delivery,
			Rating:    item.Rating,
			Reviews:   item.Reviews,
		})
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out, nil
}
