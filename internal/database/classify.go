package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ViolationKind tells which integrity rule a failed statement broke.
type ViolationKind int

const (
	UniqueViolation ViolationKind = iota + 1
	ForeignKeyViolation
	CheckViolation
	NotNullViolation
)

func (k ViolationKind) String() string {
	switch k {
	case UniqueViolation:
		return "unique violation"
	case ForeignKeyViolation:
		return "foreign key violation"
	case CheckViolation:
		return "check violation"
	case NotNullViolation:
		return "not null violation"
	default:
		return "unknown violation"
	}
}

// ConstraintError is a driver error reduced to the broken constraint.
// Constraint is the constraint or index name when the driver reports one.
type ConstraintError struct {
	Kind       ViolationKind
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Constraint == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s on %s: %v", e.Kind, e.Constraint, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

var pgViolations = map[string]ViolationKind{
	"23505": UniqueViolation,
	"23503": ForeignKeyViolation,
	"23514": CheckViolation,
	"23502": NotNullViolation,
}

// Classify returns a *ConstraintError for integrity violations reported by
// PostgreSQL or SQLite and err unchanged for everything else.
func (s *Store) Classify(err error) error {
	if err == nil {
		return nil
	}

	var cerr *ConstraintError
	if errors.As(err, &cerr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind, ok := pgViolations[pgErr.Code]
		if !ok {
			return err
		}
		return &ConstraintError{Kind: kind, Constraint: pgErr.ConstraintName, Err: err}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		return s.classifySQLite(liteErr, err)
	}

	return err
}

// SQLite reports "UNIQUE constraint failed: users.username" rather than the
// index name, so unique violations are mapped back through the indexes
// recorded by Migrate.
func (s *Store) classifySQLite(liteErr sqlite3.Error, err error) error {
	detail := ""
	if _, after, found := strings.Cut(liteErr.Error(), "constraint failed: "); found {
		detail = strings.TrimSpace(after)
	}

	switch liteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		name := detail
		if idx, ok := s.uniqueIndex(detail); ok {
			name = idx
		}
		return &ConstraintError{Kind: UniqueViolation, Constraint: name, Err: err}
	case sqlite3.ErrConstraintForeignKey:
		return &ConstraintError{Kind: ForeignKeyViolation, Constraint: detail, Err: err}
	case sqlite3.ErrConstraintCheck:
		return &ConstraintError{Kind: CheckViolation, Constraint: detail, Err: err}
	case sqlite3.ErrConstraintNotNull:
		return &ConstraintError{Kind: NotNullViolation, Constraint: detail, Err: err}
	default:
		return err
	}
}
