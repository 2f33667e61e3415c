package re2

import (
	"go.dw1.io/re2/internal/cast"
	"go.dw1.io/re2/regexp"
)

// Atom is a bare word in an option list, such as caseless or global.
type Atom string

func (a Atom) String() string {
	return string(a)
}

// Tuple is a keyed option: an [Atom] head followed by its values, such as
// Tuple{Atom("offset"), 4}.
type Tuple []any

// ParseCompileOptions decodes a compile option list. Recognized tokens are
// caseless, {max_mem, N} with N > 0 and {engine, Name}. Any unknown or
// malformed token rejects the whole list.
func ParseCompileOptions(tokens []any) (CompileOptions, error) {
	var opts CompileOptions

	for _, tok := range tokens {
		head, args, err := splitToken(tok)
		if err != nil {
			return CompileOptions{}, err
		}

		switch {
		case head == "caseless" && len(args) == 0:
			opts.Caseless = true
		case head == "max_mem" && len(args) == 1:
			n, err := cast.Int[int64](args[0])
			if err != nil || n <= 0 {
				return CompileOptions{}, badArgument("max_mem: invalid value %v", args[0])
			}
			opts.MaxMem = n
		case head == "engine" && len(args) == 1:
			name, err := cast.Name(args[0])
			if err != nil {
				return CompileOptions{}, badArgument("engine: invalid value %v", args[0])
			}
			e, ok := regexp.ParseEngine(name)
			if !ok {
				return CompileOptions{}, badArgument("engine: unknown engine %q", name)
			}
			opts.Engine = e
		default:
			return CompileOptions{}, badArgument("unknown compile option %v", tok)
		}
	}

	return opts, nil
}

// ParseMatchOptions decodes a match option list. Recognized tokens are
// caseless, {offset, N} with N >= 0, {capture, Spec} and
// {capture, Spec, Type}. Spec is all, all_but_first, first, none or a list
// of group numbers and names; Type is index or binary. Any unknown or
// malformed token rejects the whole list.
func ParseMatchOptions(tokens []any) (MatchOptions, error) {
	var opts MatchOptions

	for _, tok := range tokens {
		head, args, err := splitToken(tok)
		if err != nil {
			return MatchOptions{}, err
		}

		switch {
		case head == "caseless" && len(args) == 0:
			opts.Caseless = true
		case head == "offset" && len(args) == 1:
			n, err := cast.Int[int](args[0])
			if err != nil || n < 0 {
				return MatchOptions{}, badArgument("offset: invalid value %v", args[0])
			}
			opts.Offset = n
		case head == "capture" && (len(args) == 1 || len(args) == 2):
			spec, err := parseValueSpec(args[0])
			if err != nil {
				return MatchOptions{}, err
			}
			opts.Capture = spec

			if len(args) == 2 {
				typ, err := parseResultType(args[1])
				if err != nil {
					return MatchOptions{}, err
				}
				opts.Type = typ
			}
		default:
			return MatchOptions{}, badArgument("unknown match option %v", tok)
		}
	}

	return opts, nil
}

// ParseReplaceOptions decodes a replace option list. The only recognized
// token is global.
func ParseReplaceOptions(tokens []any) (ReplaceOptions, error) {
	var opts ReplaceOptions

	for _, tok := range tokens {
		head, args, err := splitToken(tok)
		if err != nil {
			return ReplaceOptions{}, err
		}

		if head != "global" || len(args) != 0 {
			return ReplaceOptions{}, badArgument("unknown replace option %v", tok)
		}
		opts.Global = true
	}

	return opts, nil
}

// splitToken returns the head word of tok and its values. A bare word has no
// values.
func splitToken(tok any) (string, []any, error) {
	var items []any
	switch t := tok.(type) {
	case Atom, string:
		return word(t), nil, nil
	case Tuple:
		items = t
	case []any:
		items = t
	default:
		return "", nil, badArgument("option must be a word or a tuple, got %T", tok)
	}

	if len(items) == 0 {
		return "", nil, badArgument("empty option tuple")
	}

	switch items[0].(type) {
	case Atom, string:
		return word(items[0]), items[1:], nil
	}

	return "", nil, badArgument("option tuple must start with a word, got %T", items[0])
}

func word(v any) string {
	switch w := v.(type) {
	case Atom:
		return string(w)
	case string:
		return w
	}

	return ""
}

func parseValueSpec(v any) (ValueSpec, error) {
	switch t := v.(type) {
	case ValueSpec:
		return t, nil
	case Atom, string:
		switch word(t) {
		case "all":
			return CaptureAll, nil
		case "all_but_first":
			return CaptureAllButFirst, nil
		case "first":
			return CaptureFirst, nil
		case "none":
			return CaptureNone, nil
		}

		return ValueSpec{}, badArgument("capture: unknown value spec %q", word(t))
	case []CaptureID:
		return CaptureList(t...), nil
	case []any:
		ids := make([]CaptureID, 0, len(t))
		for _, item := range t {
			id, err := parseCaptureID(item)
			if err != nil {
				return ValueSpec{}, err
			}
			ids = append(ids, id)
		}

		return CaptureList(ids...), nil
	}

	return ValueSpec{}, badArgument("capture: invalid value spec %T", v)
}

// parseCaptureID reads one list element. Integers are group numbers, even
// negative ones (they resolve to a placeholder); strings, byte slices and
// atoms are names.
func parseCaptureID(v any) (CaptureID, error) {
	if id, ok := v.(CaptureID); ok {
		return id, nil
	}

	if cast.IsInt(v) {
		n, err := cast.Int[int](v)
		if err != nil {
			return CaptureID{}, badArgument("capture: group number %v: %v", v, err)
		}

		return Index(n), nil
	}

	switch v.(type) {
	case string, []byte, Atom:
		name, err := cast.Name(v)
		if err == nil {
			return Name(name), nil
		}
	}

	return CaptureID{}, badArgument("capture: malformed group id %v", v)
}

func parseResultType(v any) (ResultType, error) {
	switch t := v.(type) {
	case ResultType:
		if t == TypeBinary || t == TypeIndex {
			return t, nil
		}
	case Atom, string:
		switch word(t) {
		case "binary":
			return TypeBinary, nil
		case "index":
			return TypeIndex, nil
		}
	}

	return 0, badArgument("capture: unknown result type %v", v)
}
