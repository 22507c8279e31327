package main

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"txview/internal/api"
)

func TestListTransactions(t *testing.T) {
	fixtures := makeFixtures(57)
	handler := listTransactions(fixtures)

	testCases := []struct {
		name          string
		query         string
		expectedRows  int
		expectedPage  int
		expectedTotal int
		expectedNext  api.PageHint
		firstID       int64
	}{
		{
			name:          "first page",
			query:         "?page=1&limit=10",
			expectedRows:  10,
			expectedPage:  1,
			expectedTotal: 6,
			expectedNext:  api.PageHint{Page: 2, Limit: 10},
			firstID:       1,
		},
		{
			name:          "last short page",
			query:         "?page=6&limit=10",
			expectedRows:  7,
			expectedPage:  6,
			expectedTotal: 6,
			expectedNext:  api.PageHint{Page: 6, Limit: 10},
			firstID:       51,
		},
		{
			name:          "past the end is empty",
			query:         "?page=9&limit=10",
			expectedRows:  0,
			expectedPage:  9,
			expectedTotal: 6,
			expectedNext:  api.PageHint{Page: 6, Limit: 10},
		},
		{
			name:          "missing params normalized",
			query:         "",
			expectedRows:  10,
			expectedPage:  1,
			expectedTotal: 6,
			expectedNext:  api.PageHint{Page: 2, Limit: 10},
			firstID:       1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/transactions"+tc.query, nil)
			w := httptest.NewRecorder()

			handler(w, req)

			assert.Equal(t, 200, w.Code)
			var res api.PageResult
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))

			assert.Len(t, res.Transactions, tc.expectedRows)
			assert.Equal(t, tc.expectedPage, res.CurrentPage)
			assert.Equal(t, tc.expectedTotal, res.TotalPages)
			assert.Equal(t, tc.expectedNext, res.Next)
			if tc.expectedRows > 0 {
				assert.Equal(t, tc.firstID, res.Transactions[0].ID)
			}
		})
	}
}

func TestMakeFixtures_Deterministic(t *testing.T) {
	a := makeFixtures(20)
	b := makeFixtures(20)
	assert.Equal(t, a, b)
}
