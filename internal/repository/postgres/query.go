package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPageLimit = 10

// sanitizePage clamps limit and page number to sane values before they reach SQL.
func sanitizePage(number, limit int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if number < 1 {
		number = 1
	}
	return number, limit
}

// whereBuilder accumulates positional predicates, $1, $2, ...
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) add(clause string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(clause, len(w.args)))
}

func (w *whereBuilder) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// next returns the placeholder index for the next argument.
func (w *whereBuilder) next() int { return len(w.args) + 1 }

func ensurePool(pool *pgxpool.Pool) error {
	if pool == nil {
		return errors.New("pgx pool is nil")
	}
	return nil
}
