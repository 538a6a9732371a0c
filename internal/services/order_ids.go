package services

import (
	"strconv"
	"strings"
)

// ParseOrderID parses a single order reference such as "42", " 42 " or "#42".
// Only exact base-10 integers are accepted.
func ParseOrderID(raw string) (int, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if s == "" {
		return 0, false
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParseOrderIDs parses a comma-separated id list permissively: malformed
// entries are dropped and duplicates keep their first position.
func ParseOrderIDs(raw string) []int {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	seen := make(map[int]struct{}, len(parts))
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, ok := ParseOrderID(p)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// FormatOrderIDs is the inverse of ParseOrderIDs.
func FormatOrderIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}
