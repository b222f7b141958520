// Package main implements a mock retailer search server for local
// development. It answers every retailer's search endpoint from a JSON
// fixture file so the http source kind can be exercised without network
// access.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/donaldgifford/grocery-price-tracker/internal/retailer"
)

const defaultLimit = 8

func main() {
	port := flag.Int("port", 9091, "port to listen on")
	fixtureFile := flag.String("fixture", "internal/retailer/testdata/fixtures.json", "path to the retailer fixture file")
	failing := flag.String("fail", "", "comma separated retailers that answer 503")
	latency := flag.Duration("latency", 0, "delay added to every search")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixtures, err := retailer.LoadFixtures(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}

	sources := retailer.StaticSources(fixtures)
	for _, s := range sources {
		logger.Info("loaded retailer", "retailer", s.Name(), "products", len(s.Products("")))
	}

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock retailer server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, sources, splitList(*failing), *latency)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func splitList(s string) map[string]bool {
	out := map[string]bool{}
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out[part] = true
		}
	}
	return out
}

func newMux(logger *slog.Logger, sources []*retailer.StaticSource, failing map[string]bool, latency time.Duration) *http.ServeMux {
	byName := make(map[string]*retailer.StaticSource, len(sources))
	for _, s := range sources {
		byName[s.Name()] = s
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{retailer}", searchHandler(logger, byName, failing, latency))
	mux.HandleFunc("GET /{retailer}/products", productsHandler(byName))
	return mux
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func searchHandler(
	logger *slog.Logger,
	sources map[string]*retailer.StaticSource,
	failing map[string]bool,
	latency time.Duration,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("retailer")
		s, ok := sources[name]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown retailer " + name})
			return
		}
		if failing[name] {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "search temporarily unavailable"})
			return
		}

		if latency > 0 {
			select {
			case <-time.After(latency):
			case <-r.Context().Done():
				return
			}
		}

		limit := defaultLimit
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
			limit = v
		}

		q := r.URL.Query().Get("q")
		products := s.Lookup(q, limit)

		writeJSON(w, http.StatusOK, retailer.SearchResponse{
			Retailer: name,
			Products: products,
			Total:    len(products),
		})
		logger.Info("search", "retailer", name, "query", q, "returned", len(products), "limit", limit)
	}
}

func productsHandler(sources map[string]*retailer.StaticSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("retailer")
		s, ok := sources[name]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown retailer " + name})
			return
		}
		products := s.Products(r.URL.Query().Get("filter"))
		writeJSON(w, http.StatusOK, retailer.SearchResponse{Retailer: name, Products: products, Total: len(products)})
	}
}
