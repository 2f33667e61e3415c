// Package re2 binds compile, match and replace requests from a host to a
// regular expression engine.
//
// A pattern is compiled once into a [Pattern] handle and can then be shared
// by any number of goroutines. Handles are reference counted: [Pattern.Clone]
// adds a reference, [Pattern.Release] drops one, and the engine program is
// torn down exactly once when the last reference goes away. A handle the host
// simply forgets is released by the garbage collector.
//
// Options can be given as typed structs ([CompileOptions], [MatchOptions],
// [ReplaceOptions]) or decoded from generic token lists with
// [ParseCompileOptions], [ParseMatchOptions] and [ParseReplaceOptions]:
//
//	opts, err := re2.ParseMatchOptions([]any{
//		re2.Tuple{re2.Atom("offset"), 4},
//		re2.Tuple{re2.Atom("capture"), []any{"year", 2}, re2.Atom("index")},
//	})
//
// Match results hold one [CaptureValue] per requested group, either an
// [IndexPair] into the subject or an owned [Bytes] copy. Only the groups the
// capture selection needs are requested from the engine.
//
// Every entry point runs through a dispatcher that either executes inline or
// hands the call to a bounded pool of workers, depending on what the host
// supports. Package-level functions use a default [Client] configured from
// the environment (RE2_* variables or an re2.yaml file).
//
// Engine failures are reported as [*CompileError] carrying a stable
// [ErrorCode] tag. Malformed input is reported as [ErrBadArgument] and
// failed result allocations as [ErrAllocationFailure].
package re2
