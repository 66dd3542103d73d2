package usecase

import (
	"strings"

	"notemark/model"
)

// Filter narrows items to those matching every supplied parameter while
// keeping their order. Empty parameters do not filter.
//
// Tags use OR semantics: an item matches when any of its tags is among the
// requested ones.
func Filter[T model.Filterable](items []T, q model.ListQuery) []T {
	query := strings.ToLower(q.Q)
	wanted := parseTags(q.Tags)
	favoritesOnly := q.Favorite == "true"

	out := make([]T, 0, len(items))
	for _, item := range items {
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		if wanted != nil && !matchesTags(item, wanted) {
			continue
		}
		if favoritesOnly && !item.Favorite() {
			continue
		}
		out = append(out, item)
	}
	return out
}

// parseTags turns "Work, home" into {"work", "home"}; nil means no filter.
func parseTags(raw string) map[string]struct{} {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	set := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		set[strings.ToLower(strings.TrimSpace(p))] = struct{}{}
	}
	return set
}

func matchesQuery(item model.Filterable, query string) bool {
	for _, field := range item.SearchFields() {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func matchesTags(item model.Filterable, wanted map[string]struct{}) bool {
	for _, tag := range item.TagList() {
		if _, ok := wanted[strings.ToLower(tag)]; ok {
			return true
		}
	}
	return false
}

// NormalizeTags lowercases and trims each tag. Order and duplicates are kept.
func NormalizeTags(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = strings.ToLower(strings.TrimSpace(t))
	}
	return out
}
