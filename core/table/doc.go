// Package table defines the in-memory tabular model shared by loaders and the
// reconcile engine.
//
// A Table has an ordered list of unique column names and an ordered list of
// rows. Each Row maps column names to Values; a missing entry is null.
//
// # Values
//
// Value is a comparable scalar of kind null, text or number. Equality is exact:
// there is no coercion between text and numbers, no trimming and no
// case-folding. Loaders decide the kind of each cell (see Parse).
package table
