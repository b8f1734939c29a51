package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"roster-audit/core/table"
)

var (
	// ErrKeyColumnNotFound is returned when no column matches the key phrases.
	ErrKeyColumnNotFound = errors.New("key column not found")

	// ErrEmptyPhraseSet is returned when a JoinKeySpec has no phrases.
	ErrEmptyPhraseSet = errors.New("join key phrase set is empty")
)

// KeyColumnNotFoundError carries the available columns of both tables so the
// caller can show them to the user.
type KeyColumnNotFoundError struct {
	Phrases    []string
	Sides      []Side
	OldColumns []string
	NewColumns []string
}

func (e *KeyColumnNotFoundError) Error() string {
	sides := make([]string, len(e.Sides))
	for i, s := range e.Sides {
		sides[i] = string(s)
	}
	return fmt.Sprintf("%s: no column contains all of %q in %s table(s)",
		ErrKeyColumnNotFound, e.Phrases, strings.Join(sides, ", "))
}

func (e *KeyColumnNotFoundError) Unwrap() error {
	return ErrKeyColumnNotFound
}

// ResolveKey returns the first column, in table order, whose name contains
// every phrase. Several matches are not an error: the first one wins.
func ResolveKey(t *table.Table, phrases []string) (string, error) {
	if len(phrases) == 0 {
		return "", ErrEmptyPhraseSet
	}
	for _, col := range t.Columns {
		if containsAll(col, phrases) {
			return col, nil
		}
	}
	return "", fmt.Errorf("%w: %q in %s", ErrKeyColumnNotFound, phrases, t.Name)
}

// ResolveKeys resolves the key column of both tables. If either fails the
// returned error is a *KeyColumnNotFoundError listing both tables' columns.
func ResolveKeys(oldTbl, newTbl *table.Table, spec JoinKeySpec) (keyOld, keyNew string, err error) {
	if len(spec.Phrases) == 0 {
		return "", "", ErrEmptyPhraseSet
	}

	var missing []Side
	keyOld, errOld := ResolveKey(oldTbl, spec.Phrases)
	if errOld != nil {
		missing = append(missing, SideOld)
	}
	keyNew, errNew := ResolveKey(newTbl, spec.Phrases)
	if errNew != nil {
		missing = append(missing, SideNew)
	}

	if len(missing) > 0 {
		return "", "", &KeyColumnNotFoundError{
			Phrases:    spec.Phrases,
			Sides:      missing,
			OldColumns: append([]string(nil), oldTbl.Columns...),
			NewColumns: append([]string(nil), newTbl.Columns...),
		}
	}
	return keyOld, keyNew, nil
}

func containsAll(s string, phrases []string) bool {
	for _, p := range phrases {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
