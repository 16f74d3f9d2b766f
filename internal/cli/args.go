package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseIDs reads item ids from arguments, accepting both
// comma-separated runs ("1,2,3") and separate arguments.
func parseIDs(args []string) ([]int64, error) {
	var ids []int64
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid item id %q", part)
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no item ids given")
	}
	return ids, nil
}

// looksLikeIDs reports whether an argument consists only of digits
// and commas, i.e. an id list rather than text.
func looksLikeIDs(arg string) bool {
	if arg == "" {
		return false
	}
	for _, r := range arg {
		if (r < '0' || r > '9') && r != ',' {
			return false
		}
	}
	return true
}

// splitTitles splits a comma-separated add argument into individual
// titles, dropping empties.
func splitTitles(raw string) []string {
	var titles []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			titles = append(titles, part)
		}
	}
	return titles
}
