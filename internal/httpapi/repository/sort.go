package repository

import "strings"

// orderClause builds an ORDER BY clause from a caller-supplied sort field and
// direction. Unrecognized fields fall back to the listing's documented
// default; direction defaults to the fallback's direction.
func orderClause(sortBy, sortOrder string, allowed map[string]bool, fallback string) string {
	if !allowed[sortBy] {
		return fallback
	}
	direction := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		direction = "DESC"
	}
	return sortBy + " " + direction
}
