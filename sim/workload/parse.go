package workload

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseReferenceString reads page ids separated by whitespace and/or commas,
// e.g. "7 0 1 2" or "7,0,1,2". An empty or blank string yields an empty,
// non-nil slice.
func ParseReferenceString(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	pages := make([]int, 0, len(fields))
	for i, f := range fields {
		page, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("reference %d: %q is not an integer", i, f)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// FormatReferenceString is the inverse of ParseReferenceString, space separated.
func FormatReferenceString(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, " ")
}
