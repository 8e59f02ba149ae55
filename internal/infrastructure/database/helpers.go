package database

import (
	"errors"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories translate into domain errors
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
)

// Close closes the pool; safe to call more than once
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		log.Println("[DATABASE] Pool is already closed or was never initialized")
		return nil
	}

	log.Println("[DATABASE] Closing database connection pool...")
	db.Pool.Close()
	db.Pool = nil
	log.Println("[DATABASE] Connection pool closed successfully")

	return nil
}

// ConstraintViolation reports the SQLSTATE code and constraint name of a pg error
func ConstraintViolation(err error) (code, constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", "", false
	}
	return pgErr.Code, pgErr.ConstraintName, true
}

// IsUniqueViolation reports whether err is a unique_violation on a constraint whose
// name contains the given fragment (empty fragment matches any constraint)
func IsUniqueViolation(err error, fragment string) bool {
	return isViolation(err, CodeUniqueViolation, fragment)
}

// IsForeignKeyViolation reports whether err is a foreign_key_violation on a matching constraint
func IsForeignKeyViolation(err error, fragment string) bool {
	return isViolation(err, CodeForeignKeyViolation, fragment)
}

// IsCheckViolation reports whether err is a check_violation on a matching constraint
func IsCheckViolation(err error, fragment string) bool {
	return isViolation(err, CodeCheckViolation, fragment)
}

func isViolation(err error, wantCode, fragment string) bool {
	code, constraint, ok := ConstraintViolation(err)
	if !ok || code != wantCode {
		return false
	}
	return fragment == "" || strings.Contains(constraint, fragment)
}
