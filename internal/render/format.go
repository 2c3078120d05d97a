package render

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

var viewUnits = []struct {
	size   int64
	suffix string
}{
	{1_000_000_000, "B"},
	{1_000_000, "M"},
	{1_000, "K"},
}

// FormatViews shortens a view count: 999, 1.2K, 15K, 1.2M, 3B. The decimal is
// truncated, never rounded up.
func FormatViews(n int64) string {
	for _, u := range viewUnits {
		if n < u.size {
			continue
		}
		whole := n / u.size
		if whole >= 10 {
			return strconv.FormatInt(whole, 10) + u.suffix
		}
		tenth := (n % u.size) * 10 / u.size
		if tenth == 0 {
			return strconv.FormatInt(whole, 10) + u.suffix
		}
		return strconv.FormatInt(whole, 10) + "." + strconv.FormatInt(tenth, 10) + u.suffix
	}
	return strconv.FormatInt(n, 10)
}

// FormatAge describes t relative to now, e.g. "3 days ago". Zero times yield "".
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
