package utils

import (
	"sort"
	"strconv"
	"strings"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizePlace is the canonical form of a route origin or destination.
func NormalizePlace(s string) string {
	return strings.ToUpper(NormalizeSpace(s))
}

// maxIDRange caps a single "a-b" part so a typo cannot expand to millions of ids.
const maxIDRange = 10000

// ParseIDList parses "10, 12-15, 20" into sorted unique ids. Ranges are
// inclusive; parts that are not a number or a range are ignored.
func ParseIDList(raw string) []int64 {
	set := map[int64]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			a, errA := strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
			b, errB := strconv.ParseInt(strings.TrimSpace(hi), 10, 64)
			if errA != nil || errB != nil || a <= 0 || b < a || b-a > maxIDRange {
				continue
			}
			for id := a; id <= b; id++ {
				set[id] = struct{}{}
			}
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		set[id] = struct{}{}
	}

	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
