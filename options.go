package re2

import (
	"fmt"

	"go.dw1.io/re2/regexp"
)

// CompileOptions configures [Compile]. The zero value compiles a
// case-sensitive pattern with the default memory budget on the default
// engine.
type CompileOptions struct {
	// Caseless makes the pattern match case-insensitively.
	Caseless bool
	// MaxMem bounds the memory of the compiled program in bytes. Zero uses
	// the client default.
	MaxMem int64
	// Engine selects the backend.
	Engine regexp.Engine
}

func (o CompileOptions) validate() error {
	if o.MaxMem < 0 {
		return badArgument("max_mem must be positive, got %d", o.MaxMem)
	}

	if o.Engine < regexp.EngineCore || o.Engine > regexp.EngineAuto {
		return badArgument("unknown engine %d", int(o.Engine))
	}

	return nil
}

// ResultType selects how matched groups are reported.
type ResultType int

const (
	// TypeBinary reports each group as an owned copy of its bytes.
	TypeBinary ResultType = iota
	// TypeIndex reports each group as an [IndexPair] into the subject.
	TypeIndex
)

func (t ResultType) String() string {
	switch t {
	case TypeBinary:
		return "binary"
	case TypeIndex:
		return "index"
	}

	return "unknown"
}

// MatchOptions configures [Match]. The zero value searches from the start of
// the subject and returns every group as binary.
type MatchOptions struct {
	// Caseless compiles a text pattern case-insensitively. It is rejected
	// for a compiled [Pattern], whose case sensitivity is fixed.
	Caseless bool
	// Offset is the byte offset the search starts at.
	Offset int
	// Capture selects the groups to report.
	Capture ValueSpec
	// Type selects the result encoding.
	Type ResultType
}

func (o MatchOptions) validate() error {
	if o.Offset < 0 {
		return badArgument("offset must not be negative, got %d", o.Offset)
	}

	if o.Type != TypeBinary && o.Type != TypeIndex {
		return badArgument("unknown result type %d", int(o.Type))
	}

	return nil
}

// ReplaceOptions configures [Replace].
type ReplaceOptions struct {
	// Global replaces every match instead of the first.
	Global bool
}

type specKind int

const (
	specAll specKind = iota
	specAllButFirst
	specFirst
	specNone
	specList
)

// ValueSpec selects which groups a match reports. The zero value is
// [CaptureAll].
type ValueSpec struct {
	kind specKind
	ids  []CaptureID
}

var (
	// CaptureAll reports every group, the whole match first.
	CaptureAll = ValueSpec{kind: specAll}
	// CaptureAllButFirst reports every group except the whole match.
	CaptureAllButFirst = ValueSpec{kind: specAllButFirst}
	// CaptureFirst reports the whole match only.
	CaptureFirst = ValueSpec{kind: specFirst}
	// CaptureNone reports nothing beyond whether the pattern matched.
	CaptureNone = ValueSpec{kind: specNone}
)

// CaptureList reports the given groups, in order. An id that does not name a
// group of the pattern yields an unmatched placeholder.
func CaptureList(ids ...CaptureID) ValueSpec {
	return ValueSpec{kind: specList, ids: append([]CaptureID{}, ids...)}
}

// IDs returns the identifiers of a [CaptureList] selection.
func (s ValueSpec) IDs() []CaptureID {
	return s.ids
}

func (s ValueSpec) String() string {
	switch s.kind {
	case specAll:
		return "all"
	case specAllButFirst:
		return "all_but_first"
	case specFirst:
		return "first"
	case specNone:
		return "none"
	}

	return fmt.Sprintf("%v", s.ids)
}

// CaptureID identifies a group by number or by name.
type CaptureID struct {
	index int
	name  string
	named bool
}

// Index identifies group i. Group 0 is the whole match.
func Index(i int) CaptureID {
	return CaptureID{index: i}
}

// Name identifies the first group called name.
func Name(name string) CaptureID {
	return CaptureID{name: name, named: true}
}

func (id CaptureID) String() string {
	if id.named {
		return id.name
	}

	return fmt.Sprint(id.index)
}
