package re2

// CaptureValue is one reported group: an [IndexPair] or [Bytes].
type CaptureValue interface {
	captureValue()
}

// IndexPair locates a group in the subject. An unmatched group is
// {Start: -1, Len: 0}; a group that matched the empty string at offset i is
// {Start: i, Len: 0}.
type IndexPair struct {
	Start int
	Len   int
}

func (IndexPair) captureValue() {}

// Bytes is an owned copy of a group's bytes. An unmatched group is empty.
type Bytes []byte

func (Bytes) captureValue() {}

// unmatched is the placeholder for groups that did not participate.
var unmatched = IndexPair{Start: -1}

// MatchResult is the outcome of [Match]. When Matched is false Values is
// nil. A [CaptureNone] match has no values.
type MatchResult struct {
	Matched bool
	Values  []CaptureValue
}

// encode turns the engine slots into reported values. slots holds 2*groups
// offsets relative to the subject start, -1 for unmatched groups. Binary
// values are obtained from alloc; if any allocation fails nothing is
// returned.
func encode(subject []byte, slots []int, ids []int, typ ResultType, alloc Allocator) ([]CaptureValue, error) {
	if ids == nil {
		return nil, nil
	}

	values := make([]CaptureValue, len(ids))
	for i, g := range ids {
		start, end := -1, -1
		if g >= 0 && 2*g+1 < len(slots) {
			start, end = slots[2*g], slots[2*g+1]
		}

		if typ == TypeIndex {
			if start < 0 {
				values[i] = unmatched
			} else {
				values[i] = IndexPair{Start: start, Len: end - start}
			}

			continue
		}

		if start < 0 || end == start {
			values[i] = Bytes{}
			continue
		}

		buf, err := alloc.Alloc(end - start)
		if err != nil {
			return nil, err
		}
		copy(buf, subject[start:end])
		values[i] = Bytes(buf)
	}

	return values, nil
}
