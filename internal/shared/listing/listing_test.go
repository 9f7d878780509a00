package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var bookSortFields = []string{"isbn", "title", "price"}

func TestNormalizeClampsLimit(t *testing.T) {
	cases := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero clamps to default", 0, DefaultLimit},
		{"negative clamps to default", -5, DefaultLimit},
		{"above ceiling clamps to default", 1001, DefaultLimit},
		{"ceiling is allowed", 1000, 1000},
		{"in-range kept", 250, 250},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Normalize("", tc.limit, "isbn", "asc", "isbn", "asc", bookSortFields)
			assert.Equal(t, tc.want, p.Limit)
		})
	}
}

func TestNormalizeWhitelistsSortField(t *testing.T) {
	p := Normalize("", 10, "password; DROP TABLE t_book", "asc", "isbn", "asc", bookSortFields)
	assert.Equal(t, "isbn", p.SortField)

	p = Normalize("", 10, "price", "asc", "isbn", "asc", bookSortFields)
	assert.Equal(t, "price", p.SortField)
}

func TestNormalizeSortDirection(t *testing.T) {
	p := Normalize("", 10, "isbn", "sideways", "isbn", "desc", bookSortFields)
	assert.Equal(t, DirDesc, p.SortDir)

	p = Normalize("", 10, "isbn", "asc", "isbn", "desc", bookSortFields)
	assert.Equal(t, DirAsc, p.SortDir)
}

func TestParseTimeRange(t *testing.T) {
	var p Params
	p.ParseTimeRange("2026-01-02 10:30:00", "2026-01-03")

	assert.NotNil(t, p.StartTime)
	assert.Equal(t, 10, p.StartTime.Hour())

	// Bare end date extends to end of day.
	assert.NotNil(t, p.EndTime)
	assert.Equal(t, 23, p.EndTime.Hour())

	var q Params
	q.ParseTimeRange("not-a-date", "also-not")
	assert.Nil(t, q.StartTime)
	assert.Nil(t, q.EndTime)
}
