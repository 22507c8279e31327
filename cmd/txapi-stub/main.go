// txapi-stub is a local stand-in for the remote transactions API. It serves
// the same wire contract over an in-memory fixture set so the viewer can be
// developed and demoed without the real backend.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"txview/internal/api"
	"txview/internal/config"
)

func init() {
	// the wire contract carries amounts as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	cfg := config.LoadStub()

	fixtures := makeFixtures(57)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Get(cfg.API.TransactionsPath, listTransactions(fixtures))

	srv := &http.Server{
		Addr:         ":" + cfg.StubPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("txapi-stub listening on :%s", cfg.StubPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info().Msg("server stopped")
}

func listTransactions(all []api.Transaction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := api.PageRequest{
			Page:  queryInt(r, "page"),
			Limit: queryInt(r, "limit"),
		}
		req.Validate()

		totalPages := (len(all) + req.Limit - 1) / req.Limit
		if totalPages < 1 {
			totalPages = 1
		}

		start := (req.Page - 1) * req.Limit
		if start > len(all) {
			start = len(all)
		}
		end := start + req.Limit
		if end > len(all) {
			end = len(all)
		}

		next := api.PageHint{Page: req.Page + 1, Limit: req.Limit}
		if next.Page > totalPages {
			next.Page = totalPages
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.PageResult{
			Transactions: all[start:end],
			CurrentPage:  req.Page,
			TotalPages:   totalPages,
			Next:         next,
		})
	}
}

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

// makeFixtures builds a deterministic transaction set.
func makeFixtures(n int) []api.Transaction {
	merchants := []string{"Tesco", "Pret A Manger", "TfL", "Amazon", "Netflix", "Boots", "Greggs"}
	categories := []string{"Groceries", "Eating Out", "Transport", "Shopping", "Entertainment", "Health"}
	base := time.Date(2024, time.January, 3, 9, 30, 0, 0, time.UTC)

	out := make([]api.Transaction, 0, n)
	for i := 0; i < n; i++ {
		amount := decimal.NewFromInt(int64(150 + i*37%9000)).Div(decimal.NewFromInt(100))
		if i%7 == 0 {
			amount = amount.Neg() // the odd refund
		}
		out = append(out, api.Transaction{
			ID:       int64(i + 1),
			Date:     base.AddDate(0, 0, i).Format(time.RFC3339),
			Amount:   amount,
			Merchant: merchants[i%len(merchants)],
			Category: categories[i%len(categories)],
		})
	}
	return out
}
