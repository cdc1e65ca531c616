package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level errors bubbled up from repository implementations.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("storage unavailable")
	ErrInvalidQuery = errors.New("invalid query")
)

// MapPgError translates the Postgres error codes a read-only view layer can hit
// into domain errors. Everything else passes through untouched.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.InvalidTextRepresentation:
			return ErrInvalidQuery
		case pgerrcode.IsConnectionException(pgErr.Code),
			pgErr.Code == pgerrcode.AdminShutdown,
			pgErr.Code == pgerrcode.CannotConnectNow,
			pgErr.Code == pgerrcode.TooManyConnections:
			return ErrUnavailable
		}
	}
	return err
}
