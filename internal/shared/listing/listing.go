// Package listing normalizes the query parameters shared by every select
// endpoint: keyword search, result limit, sort field and direction.
package listing

import "time"

const (
	DefaultLimit = 100
	MaxLimit     = 1000

	DirAsc  = "asc"
	DirDesc = "desc"

	// TimeLayout is the timestamp format used on the wire, both for
	// filter parameters and for rendered history rows.
	TimeLayout = "2006-01-02 15:04:05"
	DateLayout = "2006-01-02"
)

// Params are the normalized list-query parameters.
type Params struct {
	Keyword   string
	Limit     int
	SortField string
	SortDir   string
	StartTime *time.Time
	EndTime   *time.Time
}

// Normalize clamps the limit and resolves the sort field against a
// whitelist. Unknown sort fields fall back to defaultSort rather than being
// interpolated into SQL; out-of-range limits silently clamp to the default.
func Normalize(keyword string, limit int, sortField, sortDir, defaultSort, defaultDir string, validSort []string) Params {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	valid := false
	for _, f := range validSort {
		if f == sortField {
			valid = true
			break
		}
	}
	if !valid {
		sortField = defaultSort
	}

	if sortDir != DirAsc && sortDir != DirDesc {
		sortDir = defaultDir
	}

	return Params{
		Keyword:   keyword,
		Limit:     limit,
		SortField: sortField,
		SortDir:   sortDir,
	}
}

// ParseTimeRange accepts "2006-01-02 15:04:05" or "2006-01-02"; an end time
// given as a bare date extends to the end of that day. Malformed values are
// ignored, matching the tolerant behavior of the history endpoints.
func (p *Params) ParseTimeRange(start, end string) {
	if start != "" {
		if t, ok := parseFlexible(start); ok {
			p.StartTime = &t
		}
	}
	if end != "" {
		if t, err := time.Parse(TimeLayout, end); err == nil {
			p.EndTime = &t
		} else if t, err := time.Parse(DateLayout, end); err == nil {
			eod := t.Add(24*time.Hour - time.Nanosecond)
			p.EndTime = &eod
		}
	}
}

func parseFlexible(s string) (time.Time, bool) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
