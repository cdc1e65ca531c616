// Package pagelinks builds the previous/next links of the product listing so
// that every active filter survives a page change.
package pagelinks

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/maxviazov/storefront-views/internal/repository"
)

const (
	ListingPath    = "/products"
	DefaultLimit   = 10
	DefaultPageNum = 1
)

// Query is the set of listing parameters taken from the request.
// Empty strings and a zero Limit mean the parameter was not given.
type Query struct {
	Limit       int
	PageNum     int
	Category    string
	Status      string
	Title       string
	SortByPrice string
}

// Filter converts q into the product lookup filter.
func (q Query) Filter() repository.ProductFilter {
	return repository.ProductFilter{
		Page:        repository.Page{Number: q.PageNum, Limit: q.Limit},
		Category:    q.Category,
		Status:      q.Status,
		Title:       q.Title,
		SortByPrice: q.SortByPrice,
	}
}

// ParseQuery reads listing parameters. limit and pageNum fall back to their
// defaults when missing or not positive integers. The title filter arrives as
// "product" from the search form and as "title" from generated links.
func ParseQuery(v url.Values) Query {
	title := v.Get("product")
	if title == "" {
		title = v.Get("title")
	}
	return Query{
		Limit:       positiveOr(v.Get("limit"), DefaultLimit),
		PageNum:     positiveOr(v.Get("pageNum"), DefaultPageNum),
		Category:    v.Get("category"),
		Status:      v.Get("status"),
		Title:       title,
		SortByPrice: v.Get("sortByPrice"),
	}
}

func positiveOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Links holds the listing navigation URLs. An empty string means no link.
type Links struct {
	Prev string
	Next string
}

// BuildLinks computes the navigation links for a listing page. Values are
// concatenated as-is, without URL encoding.
//
// The next link deliberately leaves out the title filter; this mirrors the
// storefront's existing behavior and is pending product-owner review.
//
// A has-page flag without a page number yields no link.
func BuildLinks(q Query, m repository.PageMeta) Links {
	var l Links
	if m.HasPrevPage && m.PrevPage != nil {
		l.Prev = link(*m.PrevPage, q, true)
	}
	if m.HasNextPage && m.NextPage != nil {
		l.Next = link(*m.NextPage, q, false)
	}
	return l
}

func link(page int, q Query, withTitle bool) string {
	var b strings.Builder
	b.WriteString(ListingPath)
	b.WriteString("?pageNum=")
	b.WriteString(strconv.Itoa(page))
	if q.Limit > 0 {
		b.WriteString("&limit=")
		b.WriteString(strconv.Itoa(q.Limit))
	}
	appendParam(&b, "title", q.Title, withTitle)
	appendParam(&b, "category", q.Category, true)
	appendParam(&b, "status", q.Status, true)
	appendParam(&b, "sortByPrice", q.SortByPrice, true)
	return b.String()
}

func appendParam(b *strings.Builder, name, value string, include bool) {
	if !include || value == "" {
		return
	}
	b.WriteByte('&')
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(value)
}
