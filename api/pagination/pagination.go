// Package pagination splits ordered result sets into fixed-size, 1-indexed
// pages. Out-of-range page numbers are clamped to the nearest valid page.
package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// PerPage is the page size of every feed.
const PerPage = 10

type Paginator struct {
	count   int64
	perPage int
}

func New(count int64, perPage int) Paginator {
	if perPage < 1 {
		perPage = PerPage
	}
	if count < 0 {
		count = 0
	}
	return Paginator{count: count, perPage: perPage}
}

func (p Paginator) Count() int64 { return p.count }

func (p Paginator) PerPage() int { return p.perPage }

// NumPages is ceil(count/perPage); zero when there is nothing to page.
func (p Paginator) NumPages() int {
	per := int64(p.perPage)
	return int((p.count + per - 1) / per)
}

// Page resolves a raw page parameter. Missing or unparseable input means the
// first page, numbers below one mean the first page and numbers past the end
// mean the last page, even when they overflow an int.
func (p Paginator) Page(raw string) Page {
	raw = strings.TrimSpace(raw)
	number, err := strconv.Atoi(raw)
	switch {
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-"):
		number = math.MaxInt
	case err != nil || number < 1:
		number = 1
	}
	if last := p.NumPages(); number > last {
		number = last
	}
	if number < 1 {
		number = 1
	}
	return Page{Number: number, PerPage: p.perPage, Count: p.count, NumPages: p.NumPages()}
}

type Page struct {
	Number   int   `json:"number"`
	PerPage  int   `json:"per_page"`
	Count    int64 `json:"count"`
	NumPages int   `json:"num_pages"`
}

func (pg Page) Offset() int {
	return (pg.Number - 1) * pg.PerPage
}

func (pg Page) HasNext() bool {
	return pg.Number < pg.NumPages
}

func (pg Page) HasPrevious() bool {
	return pg.Number > 1
}

func (pg Page) HasOtherPages() bool {
	return pg.HasNext() || pg.HasPrevious()
}

func (pg Page) NextPageNumber() int {
	if !pg.HasNext() {
		return pg.Number
	}
	return pg.Number + 1
}

func (pg Page) PreviousPageNumber() int {
	if !pg.HasPrevious() {
		return pg.Number
	}
	return pg.Number - 1
}

// StartIndex is the 1-based position of the first item on the page, zero
// for an empty page.
func (pg Page) StartIndex() int64 {
	if pg.Count == 0 {
		return 0
	}
	return int64(pg.Offset()) + 1
}

// EndIndex is the 1-based position of the last item on the page.
func (pg Page) EndIndex() int64 {
	end := int64(pg.Offset() + pg.PerPage)
	if end > pg.Count {
		end = pg.Count
	}
	return end
}

// Range lists every page number, for rendering page links.
func (pg Page) Range() []int {
	out := make([]int, 0, pg.NumPages)
	for i := 1; i <= pg.NumPages; i++ {
		out = append(out, i)
	}
	return out
}

// Slice returns the items belonging to page. The result shares the backing
// array of items.
func Slice[T any](items []T, page Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return items[:0:0]
	}
	end := start + page.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Paginate resolves raw against items and returns the page together with its
// slice.
func Paginate[T any](items []T, perPage int, raw string) ([]T, Page) {
	page := New(int64(len(items)), perPage).Page(raw)
	return Slice(items, page), page
}
