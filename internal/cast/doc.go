// Package cast decodes the loosely typed values carried by option tokens.
//
// Integers of any Go kind are narrowed through [safemath], so a value that
// does not fit the destination is an error instead of a silent truncation.
// Only integer kinds are accepted as integers: numeric strings, floats and
// bools are rejected.
//
// Names are accepted from strings, byte slices and [fmt.Stringer] values and
// converted with [cast].
package cast
