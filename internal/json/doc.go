// Package json encodes CLI output with [sonic] on the platforms it supports
// and with encoding/json elsewhere. Both produce the same bytes for the
// struct types the CLI emits.
package json
