package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageBody = `{
	"transactions": [
		{"id": 1, "date": "2024-03-05T00:00:00Z", "amount": 12.5, "merchant": "Tesco", "category": "Groceries"},
		{"id": 2, "date": "2024-03-06T00:00:00Z", "amount": -3.2, "merchant": "TfL", "category": "Transport"}
	],
	"currentPage": 1,
	"totalPages": 6,
	"next": {"page": 2, "limit": 10}
}`

func TestFetchPage_QueryParams(t *testing.T) {
	testCases := []struct {
		name          string
		page, limit   int
		expectedPage  string
		expectedLimit string
	}{
		{name: "defaults applied", page: 0, limit: 0, expectedPage: "1", expectedLimit: "10"},
		{name: "passed through", page: 3, limit: 25, expectedPage: "3", expectedLimit: "25"},
		{name: "large limit passed through unclamped", page: 1, limit: 500, expectedPage: "1", expectedLimit: "500"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got url.Values
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.URL.Query()
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(pageBody))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "/transactions", 0)
			_, err := client.FetchPage(context.Background(), tc.page, tc.limit)
			require.NoError(t, err)

			assert.Equal(t, tc.expectedPage, got.Get("page"))
			assert.Equal(t, tc.expectedLimit, got.Get("limit"))
		})
	}
}

func TestFetchPage_DecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(pageBody))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "/transactions", 0)
	res, err := client.FetchPage(context.Background(), 1, 10)
	require.NoError(t, err)

	require.Len(t, res.Transactions, 2)
	assert.Equal(t, int64(1), res.Transactions[0].ID)
	assert.Equal(t, "Tesco", res.Transactions[0].Merchant)
	assert.True(t, res.Transactions[0].Amount.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, res.Transactions[1].Amount.IsNegative())
	assert.Equal(t, 1, res.CurrentPage)
	assert.Equal(t, 6, res.TotalPages)
	assert.Equal(t, PageHint{Page: 2, Limit: 10}, res.Next)
}

func TestFetchPage_Failures(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"transactions": [`))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			client := NewClient(srv.URL, "/transactions", 0)
			_, err := client.FetchPage(context.Background(), 1, 10)
			assert.ErrorIs(t, err, ErrFetchFailed)
		})
	}
}

func TestFetchPage_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL, "/transactions", 0)
	_, err := client.FetchPage(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestPageRequest_Validate(t *testing.T) {
	req := PageRequest{Page: -2, Limit: 0}
	req.Validate()
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 10, req.Limit)

	req = PageRequest{Page: 4, Limit: 1000}
	req.Validate()
	assert.Equal(t, 4, req.Page)
	assert.Equal(t, 1000, req.Limit, "requested limit goes out untouched")
}
