package sink

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrDuplicate          = errors.New("duplicate entry")
	ErrInvalidEntry       = errors.New("invalid entry")
	ErrPartialCopy        = errors.New("partial copy")
)

// Коды и классы ошибок PostgreSQL
const (
	uniqueViolationCode       = "23505"
	integrityViolationClass   = "23"
	connectionExceptionClass  = "08"
	insufficientResourceClass = "53"
	adminShutdownCode         = "57P01"
	cannotConnectNowCode      = "57P03"
)

// MapError переводит ошибку pgx в доменную ошибку, сохраняя исходную в цепочке.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolationCode:
			return fmt.Errorf("%w: %w", ErrDuplicate, err)
		case strings.HasPrefix(pgErr.Code, integrityViolationClass):
			return fmt.Errorf("%w: constraint %s: %w", ErrInvalidEntry, pgErr.ConstraintName, err)
		case strings.HasPrefix(pgErr.Code, connectionExceptionClass),
			strings.HasPrefix(pgErr.Code, insufficientResourceClass),
			pgErr.Code == adminShutdownCode,
			pgErr.Code == cannotConnectNowCode:
			return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
		return err
	}

	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return err
}
