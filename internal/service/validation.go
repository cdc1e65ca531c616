package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/maxviazov/storefront-views/internal/repository"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

func normalizePage(p repository.Page) repository.Page {
	number, limit := p.Number, p.Limit
	if number < 1 {
		number = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return repository.Page{Number: number, Limit: limit}
}

func normalizeSort(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func isValidSort(s string) bool {
	switch s {
	case "", "asc", "desc":
		return true
	default:
		return false
	}
}

func normalizeStatus(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func isValidStatus(s string) bool {
	switch s {
	case "", "true", "false":
		return true
	default:
		return false
	}
}

func isValidID(id string) bool {
	_, err := uuid.Parse(strings.TrimSpace(id))
	return err == nil
}
