package view

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

const (
	loadingMessage = "loading transactions..."
	errorBanner    = "! an error occurred while fetching transactions"
	emptyMessage   = "no transactions to display"
)

// render writes the current state: a progress line while loading, the alert
// banner on error, the empty-state message when a clean fetch returned no
// rows, otherwise the table plus a pagination footer.
func (v *View) render(out io.Writer) {
	switch {
	case v.loading:
		fmt.Fprintln(out, loadingMessage)
	case v.fetchErr:
		fmt.Fprintln(out, errorBanner)
	case len(v.transactions) == 0:
		fmt.Fprintln(out, emptyMessage)
	default:
		table := tablewriter.NewWriter(out)
		table.SetHeader(headers())
		table.SetAutoFormatHeaders(false)
		table.SetColumnAlignment([]int{
			tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
		})
		for _, t := range v.transactions {
			table.Append(row(v.symbol, t))
		}
		table.Render()
		fmt.Fprintln(out, v.footer())
	}
}

func (v *View) footer() string {
	pages := v.lastPageIndex() + 1
	if pages < 1 {
		pages = 1
	}
	return fmt.Sprintf("page %d of %d | %d rows | %d per page",
		v.pagination.PageIndex+1, pages, v.totalRows, v.pagination.PageSize)
}
