package re2

// capturePlan is what the engine is asked for and how its slots map to the
// reported values.
type capturePlan struct {
	// groups is the number of groups requested from the engine.
	groups int
	// ids holds the group reported at each output position, -1 for an
	// unmatched placeholder. It is nil when only the match signal is needed.
	ids []int
}

// planCaptures resolves spec against a pattern with numGroups groups (group
// 0 included). names is the pattern's name table.
func planCaptures(spec ValueSpec, numGroups int, names []string) capturePlan {
	switch spec.kind {
	case specNone:
		return capturePlan{}
	case specFirst:
		return capturePlan{groups: 1, ids: []int{0}}
	case specAll:
		return capturePlan{groups: numGroups, ids: groupRange(0, numGroups)}
	case specAllButFirst:
		return capturePlan{groups: numGroups, ids: groupRange(1, numGroups)}
	}

	ids := make([]int, len(spec.ids))
	for i, id := range spec.ids {
		ids[i] = resolve(id, numGroups, names)
	}

	return capturePlan{groups: numGroups, ids: ids}
}

func groupRange(from, to int) []int {
	ids := make([]int, 0, max(to-from, 0))
	for i := from; i < to; i++ {
		ids = append(ids, i)
	}

	return ids
}

// resolve returns the group number id refers to, or -1 when the pattern has
// no such group.
func resolve(id CaptureID, numGroups int, names []string) int {
	if !id.named {
		if id.index < 0 || id.index >= numGroups {
			return -1
		}

		return id.index
	}

	if id.name == "" {
		return -1
	}

	for i, name := range names {
		if name == id.name {
			return i
		}
	}

	return -1
}
