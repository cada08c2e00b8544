package db

import (
	"testing"
	"time"
)

func timeNowFixed() time.Time {
	return time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
}

func TestParsePageRequestDefaults(t *testing.T) {
	cases := []struct {
		pageRaw, limitRaw string
		page, limit       int
	}{
		{"", "", 1, 10},
		{"abc", "xyz", 1, 10},
		{"0", "-5", 1, 10},
		{"3", "25", 3, 25},
	}
	for _, c := range cases {
		got := ParsePageRequest(c.pageRaw, c.limitRaw)
		if got.Page != c.page || got.Limit != c.limit {
			t.Fatalf("ParsePageRequest(%q, %q) = %+v", c.pageRaw, c.limitRaw, got)
		}
	}
}

func TestPageRequestOffset(t *testing.T) {
	if off := (PageRequest{Page: 1, Limit: 10}).Offset(); off != 0 {
		t.Fatalf("first page offset = %d", off)
	}
	if off := (PageRequest{Page: 3, Limit: 10}).Offset(); off != 20 {
		t.Fatalf("third page offset = %d", off)
	}
}

func TestPageSuffix(t *testing.T) {
	want := " ORDER BY fecha_creacion DESC, id DESC LIMIT $3 OFFSET $4"
	if got := PageSuffix("fecha_creacion", "id", 3); got != want {
		t.Fatalf("suffix mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(25, PageRequest{Page: 2, Limit: 10})
	if p.TotalPages != 3 {
		t.Fatalf("totalPages = %d", p.TotalPages)
	}
	if !p.HasNext || !p.HasPrev {
		t.Fatalf("page 2 of 3 should have both neighbors: %+v", p)
	}

	empty := NewPagination(0, PageRequest{Page: 1, Limit: 10})
	if empty.TotalPages != 0 || empty.HasNext || empty.HasPrev {
		t.Fatalf("empty result pagination = %+v", empty)
	}
}

func TestResolvePeriodTokens(t *testing.T) {
	if ResolvePeriod("all", timeNowFixed()).Bounded() {
		t.Fatalf("all should be unbounded")
	}
	if ResolvePeriod("", timeNowFixed()).Bounded() {
		t.Fatalf("empty period should be unbounded")
	}

	now := timeNowFixed()
	unknown := ResolvePeriod("fortnight", now)
	if unknown.Start == nil || *unknown.Start != now.AddDate(0, 0, -30) {
		t.Fatalf("unknown token should fall back to 30 days: %+v", unknown)
	}
	month := ResolvePeriod("month", now)
	if month.Start == nil || *month.Start != now.AddDate(0, -1, 0) {
		t.Fatalf("month start = %+v", month.Start)
	}
}
