package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/you/go-clonar-search/internal/config"
)

type SerpHotels struct {
	endpoint string
	apiKey   string
	client   *http.Client
	now      func() time.Time
}

func NewSerpHotels(cfg *config.Config) *SerpHotels {
	return &SerpHotels{
		endpoint: cfg.SerpAPIEndpoint,
		apiKey:   cfg.SerpAPIKey,
		client:   http.DefaultClient,
		now:      time.Now,
	}
}

func (h *SerpHotels) Name() string { return "serpapi-hotels" }

func (h *SerpHotels) FieldType() FieldType { return FieldHotel }

func (h *SerpHotels) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	if h.apiKey == "" {
		return nil, errors.New("serpapi key missing")
	}

	// google_hotels requires a stay window; a next-day one-night stay keeps
	// results comparable for queries that carry no dates.
	checkIn := h.now().AddDate(0, 0, 1).Format("2006-01-02")
	checkOut := h.now().AddDate(0, 0, 2).Format("2006-01-02")

	q := url.Values{}
	q.Set("engine", "google_hotels")
	q.Set("q", query)
	q.Set("hl", "en")
	q.Set("gl", "us")
	q.Set("check_in_date", checkIn)
	q.Set("check_out_date", checkOut)
	q.Set("api_key", h.apiKey)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, h.endpoint+"?"+q.Encode(), nil)
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("serpapi hotels: %s", resp.Status)
	}

	var payload struct {
		Properties []struct {
			Name         string `json:"name"`
			Link         string `json:"link"`
			RatePerNight struct {
				Lowest          string  `json:"lowest"`
				ExtractedLowest float64 `json:"extracted_lowest"`
			} `json:"rate_per_night"`
			OverallRating float64 `json:"overall_rating"`
			Reviews       int     `json:"reviews"`
			Images        []struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"images"`
			Location struct {
				City string `json:"city"`
			} `json:"location"`
		} `json:"properties"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	var out []Result
	for _, p := range payload.Properties {
		if p.Name == "" {
			continue
		}
		thumb := ""
		if len(p.Images) > 0 {
			thumb = p.Images[0].Thumbnail
		}
		out = append(out, Result{
			Provider:  h.Name(),
			Title:     p.Name,
			Price:     p.RatePerNight.Lowest,
			NumPrice:  p.RatePerNight.ExtractedLowest,
			Link:      p.Link,
			Thumbnail: thumb,
			Rating:    p.OverallRating,
			Reviews:   p.Reviews,
			City:      p.Location.City,
		})
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out, nil
}
