// Package listview derives filtered, paginated views of a fetched record set.
// Everything here is pure: the same records and state always give the same View.
package listview

import (
	"fmt"
	"strings"

	"paydash/internal/domain"
)

// PageSize is the fixed number of records per page.
const PageSize = 5

// Tab is the status filter applied to the record set.
type Tab string

const (
	TabAll     Tab = "all"
	TabSuccess Tab = "success"
	TabFailed  Tab = "failed"
)

// Tabs lists the selectable filters in display order.
var Tabs = []Tab{TabAll, TabSuccess, TabFailed}

// ParseTab normalises a filter name. An empty name yields TabAll.
func ParseTab(s string) (Tab, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TabAll, nil
	}
	for _, t := range Tabs {
		if Tab(s) == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// State is the immutable view state of a list screen.
type State struct {
	Tab  Tab
	Page int
}

// Initial is the state a list screen starts in.
func Initial() State {
	return State{Tab: TabAll, Page: 1}
}

// WithTab selects a filter and resets to the first page.
func (s State) WithTab(t Tab) State {
	return State{Tab: t, Page: 1}
}

// WithPage selects a page. Pages are not clamped to TotalPages; values below 1
// become 1.
func (s State) WithPage(p int) State {
	if p < 1 {
		p = 1
	}
	return State{Tab: s.Tab, Page: p}
}

// Reset returns to the first page, keeping the filter.
func (s State) Reset() State {
	return s.WithPage(1)
}

// View is the derived, render-ready list.
type View struct {
	State         State
	Items         []domain.Payment
	FilteredCount int
	TotalPages    int
}

// Empty reports whether the current page has nothing to show.
func (v View) Empty() bool {
	return len(v.Items) == 0
}

// Pages returns the page numbers to offer, 1..TotalPages.
func (v View) Pages() []int {
	pages := make([]int, v.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Filter returns the records matching t in their original order. TabAll
// returns records unchanged.
func Filter(records []domain.Payment, t Tab) []domain.Payment {
	if t == TabAll {
		return records
	}
	out := make([]domain.Payment, 0, len(records))
	for _, r := range records {
		if string(r.Status) == string(t) {
			out = append(out, r)
		}
	}
	return out
}

// TotalPages is ceil(n / PageSize).
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// Paginate returns the 1-based page p of records. Pages outside
// 1..TotalPages(len(records)) are empty.
func Paginate(records []domain.Payment, p int) []domain.Payment {
	if p < 1 {
		return nil
	}
	start := (p - 1) * PageSize
	if start >= len(records) {
		return nil
	}
	end := start + PageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end:end]
}

// Derive computes the view for records under state.
func Derive(records []domain.Payment, state State) View {
	filtered := Filter(records, state.Tab)
	return View{
		State:         state,
		Items:         Paginate(filtered, state.Page),
		FilteredCount: len(filtered),
		TotalPages:    TotalPages(len(filtered)),
	}
}
