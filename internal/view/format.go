package view

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"txview/internal/api"
)

// FormatDate renders a transaction date as "DD-MM - DD/MM/YYYY". The doubled
// day/month prefix is the display format the product ships with; keep it as
// is. Unparseable input is passed through untouched.
func FormatDate(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return t.Format("02-01") + " - " + t.Format("02/01/2006")
}

// FormatAmount renders a monetary amount with the currency symbol and two
// fixed decimals: 12.5 → "£12.50".
func FormatAmount(symbol string, d decimal.Decimal) string {
	return symbol + d.StringFixed(2)
}

func headers() []string {
	return []string{"ID", "DATE", "AMOUNT", "MERCHANT", "CATEGORY"}
}

func row(symbol string, t api.Transaction) []string {
	return []string{
		strconv.FormatInt(t.ID, 10),
		FormatDate(t.Date),
		FormatAmount(symbol, t.Amount),
		t.Merchant,
		t.Category,
	}
}
