package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/xy-planning-network/lumber"
	"gorm.io/gorm"
)

type DB struct {
	// *gorm.DB's methods are generally unsafe to use.
	// Specifically, some *gorm.DB methods are not thread-safe
	// and mutate the state of the *gorm.DB backing DB.
	//
	// Every DB method hands back a new *DB wrapping the *gorm.DB GORM returns,
	// never mutating the receiver.
	db *gorm.DB
}

// NewDB constructs a *DB from a *gorm.DB.
func NewDB(db *gorm.DB) *DB { return &DB{db: db} }

// DB exposes the underlying *gorm.DB backing DB.
//
// NB: use in exceptional circumstances only.
func (db *DB) DB() *gorm.DB { return db.db }

// WithContext runs the current query under ctx.
func (db *DB) WithContext(ctx context.Context) *DB { return &DB{db.db.WithContext(ctx)} }

// **************************************************************************
// FINISHER METHODS
//
// These methods close out a current query, executing it.
// They return any errors occuring within the query chain
// or when executing the query.
//
// **************************************************************************

// Count returns the number of records matching the current query or an error.
func (db *DB) Count() (int64, error) {
	if db.db.Error != nil {
		return 0, db.db.Error
	}

	var count int64
	if err := db.db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: %s", lumber.ErrUnexpected, err)
	}

	return count, nil
}

// CreateInBatches inserts the slice value points to, size records per statement.
//
// If a record violates a unique constraint defined by the database, ErrExists returns.
// If a record violates some other constraint, ErrNotValid returns.
func (db *DB) CreateInBatches(value any, size int) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	return classify(db.db.CreateInBatches(value, size).Error, value)
}

// Find retrieves all records matching the current query and stores them in dest.
//
// If no matches are found, Find returns ErrNotFound.
func (db *DB) Find(dest any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	res := db.db.Find(dest)
	if err := res.Error; err != nil {
		if errSQLSyntax.MatchString(err.Error()) {
			return fmt.Errorf("%w: %s", lumber.ErrNotValid, err)
		}

		return fmt.Errorf("%w: %s", lumber.ErrUnexpected, err)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w", lumber.ErrNotFound)
	}

	return nil
}

// **************************************************************************
// QUERY BUILDING METHODS
//
// Query building methods initiate a query and then add clauses to it
// until a finisher method is called.
//
// **************************************************************************

// Limit applies a LIMIT clause to the current query.
func (db *DB) Limit(limit int) *DB {
	// NOTE: GORM interprets negatives by not applying a LIMIT clause.
	// PostgreSQL errors on negative numbers.
	// This Limit mirrors PostgreSQL, not GORM.
	if limit < 0 {
		gdb := db.db.Session(&gorm.Session{})
		_ = gdb.AddError(fmt.Errorf("%w: limit must not be negative", lumber.ErrNotValid))
		return &DB{db: gdb}
	}

	return &DB{db: db.db.Limit(limit)}
}

// Model declares the table used for the query.
func (db *DB) Model(model any) *DB { return &DB{db: db.db.Model(model)} }

// Order applies an ORDER BY clause to the current query.
func (db *DB) Order(order string) *DB { return &DB{db: db.db.Order(order)} }

// Where applies the query fragment to the current query as a WHERE or AND clause.
func (db *DB) Where(query any, args ...any) *DB { return &DB{db: db.db.Where(query, args...)} }

func classify(err error, value any) error {
	switch {
	case err == nil:
		return nil

	case errors.Is(err, gorm.ErrInvalidData):
		return fmt.Errorf("%w: %T is not a table", lumber.ErrMissingData, value)

	case errUniqViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", lumber.ErrExists, err)

	case errFKViolation.MatchString(err.Error()), errConstraintViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", lumber.ErrNotValid, err)

	default:
		return fmt.Errorf("%w: failed creating %T: %s", lumber.ErrUnexpected, value, err)
	}
}
