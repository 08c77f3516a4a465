package handlers

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"autoapi/internal/services"
)

// searchKey is the reserved filter key that triggers a LIKE search over
// the table's configured searchable columns instead of an equality match.
const searchKey = "_search"

var indexedFilterField = regexp.MustCompile(`^filters\[(\d+)\]\[field\]$`)

// ParseListParams normalizes the supported pagination and filter dialects
// into one canonical query. Pagination precedence: current+pageSize, then
// _start+_end, then page+per_page. Filters may arrive as indexed
// filters[i][field]/filters[i][value] pairs, as filter[field]=value, or
// as a JSON object in a bare filter parameter. Invalid numbers fall back
// to the defaults.
func ParseListParams(query url.Values) services.ListQuery {
	q := services.ListQuery{
		Filters: map[string]string{},
	}

	switch {
	case query.Has("current") || query.Has("pageSize"):
		q.Page = intOrDefault(query.Get("current"), services.DefaultPage)
		q.Limit = intOrDefault(query.Get("pageSize"), services.DefaultLimit)
	case query.Has("_start") || query.Has("_end"):
		start := intOrDefault(query.Get("_start"), 0)
		if start < 0 {
			start = 0
		}
		limit := intOrDefault(query.Get("_end"), 0) - start
		if limit < 1 {
			limit = services.DefaultLimit
		}
		q.Limit = limit
		q.Page = start/limit + 1
	default:
		q.Page = intOrDefault(query.Get("page"), services.DefaultPage)
		q.Limit = intOrDefault(query.Get("per_page"), services.DefaultLimit)
	}

	if q.Page < 1 {
		q.Page = services.DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = services.DefaultLimit
	}

	// filters[0][field]=name&filters[0][value]=Ann
	for key := range query {
		m := indexedFilterField.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		field := query.Get(key)
		value := query.Get(fmt.Sprintf("filters[%s][value]", m[1]))
		if field != "" {
			q.Filters[field] = value
		}
	}

	// filter[name]=Ann
	for key := range query {
		if field, ok := strings.CutPrefix(key, "filter["); ok && strings.HasSuffix(field, "]") {
			q.Filters[strings.TrimSuffix(field, "]")] = query.Get(key)
		}
	}

	// filter={"name":"Ann"}
	if raw := query.Get("filter"); strings.HasPrefix(raw, "{") {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			for field, value := range parsed {
				q.Filters[field] = stringify(value)
			}
		}
	}

	q.Search = query.Get(searchKey)
	if search, ok := q.Filters[searchKey]; ok {
		q.Search = search
		delete(q.Filters, searchKey)
	}

	q.SortBy = query.Get("sortBy")
	q.SortOrder = query.Get("sortOrder")

	return q
}

func intOrDefault(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
