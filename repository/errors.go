package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrDuplicate is returned when an insert violates a UNIQUE constraint.
	ErrDuplicate = errors.New("duplicate value")
	// ErrMissingReference is returned when an insert violates a FOREIGN KEY constraint.
	ErrMissingReference = errors.New("referenced row does not exist")
)

// translate maps driver constraint failures onto repository errors.
// Other errors are returned unchanged.
func translate(err error) error {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		// message looks like "UNIQUE constraint failed: users.email"
		col := se.Error()
		if i := strings.LastIndex(col, "."); i >= 0 {
			col = col[i+1:]
		}
		return fmt.Errorf("%w: %s", ErrDuplicate, col)
	case sqlite3.ErrConstraintForeignKey:
		return ErrMissingReference
	}
	return err
}

// timeLayout is fixed-width so that TEXT ordering matches chronological ordering.
const timeLayout = "2006-01-02T15:04:05.000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
