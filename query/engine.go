package query

import (
	"strings"

	"github.com/gallerai/gallerai/models"
)

// Item pairs an image with its metadata (nil while enrichment is still
// pending). Callers pass items already scoped to one user, most recent
// first; all engine operations preserve that order for equal ranks.
type Item struct {
	Image models.Image
	Meta  *models.ImageMetadata
}

// Result is one page of search matches.
type Result struct {
	Images  []Item
	Total   int
	Page    int
	Limit   int
	HasMore bool
}

// Search keeps items whose description or any tag contains the query,
// case-insensitively, then slices out the requested page. Total counts
// matches before slicing.
func Search(items []Item, q string, page, limit int) Result {
	q = strings.ToLower(q)

	var matches []Item
	for _, it := range items {
		if it.Meta == nil {
			continue
		}
		if matchesQuery(it.Meta, q) {
			matches = append(matches, it)
		}
	}

	total := len(matches)
	start := (page - 1) * limit
	end := start + limit

	pageStart := start
	if pageStart > total {
		pageStart = total
	}
	pageEnd := end
	if pageEnd > total {
		pageEnd = total
	}

	return Result{
		Images:  matches[pageStart:pageEnd],
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: end < total,
	}
}

func matchesQuery(meta *models.ImageMetadata, q string) bool {
	if strings.Contains(strings.ToLower(meta.Description), q) {
		return true
	}
	for _, tag := range meta.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// FilterByColor keeps items whose dominant colors contain the target
// color exactly (ignoring case), up to limit.
func FilterByColor(items []Item, color string, limit int) []Item {
	target := strings.ToLower(color)

	var filtered []Item
	for _, it := range items {
		if it.Meta == nil {
			continue
		}
		for _, c := range it.Meta.Colors {
			if strings.ToLower(c) == target {
				filtered = append(filtered, it)
				break
			}
		}
		if limit > 0 && len(filtered) >= limit {
			break
		}
	}

	return filtered
}
