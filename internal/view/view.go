package view

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"

	"txview/internal/api"
)

// Fetcher fetches one page of transactions. page is 1-indexed on the wire.
type Fetcher interface {
	FetchPage(ctx context.Context, page, limit int) (*api.PageResult, error)
}

// Pagination is the client-side cursor. PageIndex is 0-indexed; the server is
// 1-indexed, so every outbound fetch sends PageIndex+1.
type Pagination struct {
	PageIndex int
	PageSize  int
}

// settle is the resolution of one fetch, tagged with the pagination state that
// originated it so stale resolutions can be discarded.
type settle struct {
	tag    Pagination
	result *api.PageResult
	err    error
}

type cmdKind int

const (
	cmdNext cmdKind = iota
	cmdPrev
	cmdGoTo
	cmdSetSize
	cmdRefresh
)

type command struct {
	kind cmdKind
	arg  int
}

type Options struct {
	PageSize       int    // initial rows per page, default 10
	CurrencySymbol string // default "£"
}

// View owns the transaction list presentation state. All state is mutated by
// the Run goroutine only; fetches run async and come back as settle messages.
type View struct {
	fetcher Fetcher
	symbol  string

	transactions []api.Transaction
	loading      bool
	fetchErr     bool
	// totalRows is totalPages × pageSize: an approximation used only to size
	// the pagination footer, not an exact row count.
	totalRows  int
	pagination Pagination

	cmds    chan command
	settles chan settle
}

func New(f Fetcher, opts Options) *View {
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "£"
	}
	return &View{
		fetcher:    f,
		symbol:     opts.CurrencySymbol,
		loading:    true,
		pagination: Pagination{PageIndex: 0, PageSize: opts.PageSize},
		cmds:       make(chan command, 8),
		settles:    make(chan settle, 8),
	}
}

// NextPage advances the cursor one page.
func (v *View) NextPage() { v.cmds <- command{kind: cmdNext} }

// PrevPage moves the cursor back one page.
func (v *View) PrevPage() { v.cmds <- command{kind: cmdPrev} }

// GoToPage jumps to a 1-indexed page.
func (v *View) GoToPage(page int) { v.cmds <- command{kind: cmdGoTo, arg: page} }

// SetPageSize changes rows per page.
func (v *View) SetPageSize(n int) { v.cmds <- command{kind: cmdSetSize, arg: n} }

// Refresh re-fetches the current page.
func (v *View) Refresh() { v.cmds <- command{kind: cmdRefresh} }

// Close stops the Run loop after pending commands drain.
func (v *View) Close() { close(v.cmds) }

// Run mounts the view and drives it until ctx is done or Close is called.
// It issues the initial fetch, then re-fetches on every pagination change and
// re-renders to out after every event.
func (v *View) Run(ctx context.Context, out io.Writer) {
	v.dispatchFetch(ctx)
	v.render(out)

	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-v.cmds:
			if !ok {
				return
			}
			if v.applyCommand(c) {
				v.dispatchFetch(ctx)
			}
			v.render(out)
		case s := <-v.settles:
			v.applySettle(s)
			v.render(out)
		}
	}
}

// applyCommand mutates pagination and reports whether a fetch is due.
func (v *View) applyCommand(c command) bool {
	p := v.pagination
	switch c.kind {
	case cmdNext:
		last := v.lastPageIndex()
		if last >= 0 && p.PageIndex >= last {
			return false
		}
		p.PageIndex++
	case cmdPrev:
		if p.PageIndex == 0 {
			return false
		}
		p.PageIndex--
	case cmdGoTo:
		idx := c.arg - 1
		if idx < 0 {
			idx = 0
		}
		if last := v.lastPageIndex(); last >= 0 && idx > last {
			idx = last
		}
		if idx == p.PageIndex {
			return false
		}
		p.PageIndex = idx
	case cmdSetSize:
		if c.arg <= 0 || c.arg == p.PageSize {
			return false
		}
		p.PageSize = c.arg
	case cmdRefresh:
		// pagination unchanged, fetch anyway
	}
	v.pagination = p
	return true
}

// lastPageIndex is derived from totalRows; -1 until the first page lands.
func (v *View) lastPageIndex() int {
	if v.totalRows <= 0 || v.pagination.PageSize <= 0 {
		return -1
	}
	pages := (v.totalRows + v.pagination.PageSize - 1) / v.pagination.PageSize
	return pages - 1
}

// dispatchFetch starts an async fetch for the current pagination state. The
// server page parameter is always PageIndex+1; this is the only call site
// where the offset is applied.
func (v *View) dispatchFetch(ctx context.Context) {
	tag := v.pagination
	v.loading = true
	go func() {
		res, err := v.fetcher.FetchPage(ctx, tag.PageIndex+1, tag.PageSize)
		select {
		case v.settles <- settle{tag: tag, result: res, err: err}:
		case <-ctx.Done():
		}
	}()
}

// applySettle folds a fetch resolution into the state. A settle whose tag no
// longer matches the current pagination lost the race to a newer fetch and is
// dropped without touching anything.
func (v *View) applySettle(s settle) {
	if s.tag != v.pagination {
		log.Debug().
			Int("settled_page_index", s.tag.PageIndex).
			Int("current_page_index", v.pagination.PageIndex).
			Msg("discarding stale fetch result")
		return
	}
	v.loading = false
	if s.err != nil {
		log.Debug().Err(s.err).Msg("transactions fetch failed")
		v.fetchErr = true
		// keep whatever rows were already displayed
		return
	}
	v.fetchErr = false
	v.transactions = s.result.Transactions
	v.totalRows = s.result.TotalPages * s.tag.PageSize
}
