package utils

import (
	"net/http"
	"strconv"
)

type QueryOptions struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Sort     string
	Status   string
}

func ParseQueryOptions(r *http.Request, defaultLimit int) QueryOptions {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = defaultLimit
	}

	return QueryOptions{
		Page:     page,
		Limit:    limit,
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
		Status:   q.Get("status"),
	}
}

func (o QueryOptions) Skip() int {
	return (o.Page - 1) * o.Limit
}

// TotalPages rounds up; zero rows still report one page for the pager UI.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	return pages
}
