package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/you/go-clonar-search/internal/providers"
	"github.com/you/go-clonar-search/internal/service"
)

type searchResponse struct {
	Type    providers.FieldType `json:"type"`
	Query   string              `json:"query"`
	Results []providers.Result  `json:"results"`
}

func parseSearchOptions(q map[string][]string) providers.SearchOptions {
	get := func(k string) string {
		if v, ok := q[k]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}
	var opts providers.SearchOptions
	if v, err := strconv.Atoi(get("limit")); err == nil && v > 0 {
		opts.Limit = v
	}
	if v, err := strconv.ParseFloat(get("max_price"), 64); err == nil && v > 0 {
		opts.MaxPrice = v
	}
	if v, err := strconv.ParseFloat(get("min_rating"), 64); err == nil && v > 0 {
		opts.MinRating = v
	}
	opts.Brand = get("brand")
	opts.City = get("city")
	return opts
}

func writeSearchError(w http.ResponseWriter, err error) {
	var noProv *service.NoProvidersError
	if errors.As(err, &noProv) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, err.Error(), http.StatusBadGateway)
}

func SearchHandler(svc *service.SearchService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		query := q.Get("q")
		fieldType := providers.FieldType(q.Get("type"))
		if query == "" || fieldType == "" {
			http.Error(w, "q and type are required", http.StatusBadRequest)
			return
		}
		res, err := svc.Search(r.Context(), query, fieldType, parseSearchOptions(q))
		if err != nil {
			writeSearchError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(searchResponse{Type: fieldType, Query: query, Results: res})
	}
}

func ProvidersHandler(svc *service.SearchService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fieldType := providers.FieldType(r.URL.Query().Get("type"))
		if fieldType == "" {
			http.Error(w, "type is required", http.StatusBadRequest)
			return
		}
		names := make([]string, 0)
		for _, p := range svc.Providers(fieldType) {
			names = append(names, p.Name())
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"type": fieldType, "providers": names})
	}
}

func RecommendationsHandler(rec *service.RecommendationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(r.URL.Query().Get("user_id"))
		if err != nil {
			http.Error(w, "user_id is required", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rec.ForUser(userID))
	}
}

func SubscribeSSEHandler(svc *service.SearchService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fieldType := providers.FieldType(strings.TrimPrefix(r.URL.Path, "/sse/"))
		query := r.URL.Query().Get("q")
		if fieldType == "" || query == "" {
			http.Error(w, "use /sse/{type}?q=...", 400)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", 500)
			return
		}

		updateTick := time.NewTicker(30 * time.Second)
		defer updateTick.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				logrus.Debug("SSE client closed")
				return

			case <-updateTick.C:
				res, err := svc.Search(ctx, query, fieldType, parseSearchOptions(r.URL.Query()))
				if err != nil {
					fmt.Fprintf(w, "event: error\ndata: %q\n\n", err.Error())
					flusher.Flush()
					return
				}
				payload, _ := json.Marshal(searchResponse{Type: fieldType, Query: query, Results: res})
				fmt.Fprintf(w, "event: update\ndata: %s\n\n", payload)
				flusher.Flush()
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // in prod, restrict origin
	},
}

func SubscribeWSHandler(svc *service.SearchService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fieldType := providers.FieldType(strings.TrimPrefix(r.URL.Path, "/ws/"))
		query := r.URL.Query().Get("q")
		if fieldType == "" || query == "" {
			http.Error(w, "use /ws/{type}?q=...", 400)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Warn("websocket upgrade error")
			return
		}
		defer conn.Close()

		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			res, err := svc.Search(ctx, query, fieldType, parseSearchOptions(r.URL.Query()))
			if err != nil {
				conn.WriteJSON(map[string]string{"error": err.Error()})
				return
			}
			if err := conn.WriteJSON(searchResponse{Type: fieldType, Query: query, Results: res}); err != nil {
				logrus.WithError(err).Warn("websocket write error")
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				continue
			}
		}
	}
}
