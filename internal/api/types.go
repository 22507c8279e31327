package api

import "github.com/shopspring/decimal"

// Transaction is one row as the server returns it. Read-only to the client.
type Transaction struct {
	ID       int64           `json:"id"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Merchant string          `json:"merchant"`
	Category string          `json:"category"`
}

// PageHint points at a subsequent fetch. Informational only; correctness never
// depends on it.
type PageHint struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// PageResult is the response envelope for one page of transactions. Row order
// is whatever the server returned.
type PageResult struct {
	Transactions []Transaction `json:"transactions"`
	CurrentPage  int           `json:"currentPage"`
	TotalPages   int           `json:"totalPages"`
	Next         PageHint      `json:"next"`
}

// PageRequest is a paginated fetch request. Page is 1-indexed on the wire.
type PageRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Validate normalizes nonpositive pagination parameters. The requested limit
// is otherwise sent to the server as is; the page size on the wire always
// equals what the caller asked for.
func (req *PageRequest) Validate() {
	// Set defaults
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}
}
