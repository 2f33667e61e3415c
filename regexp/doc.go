// Package regexp is the engine side of the binding: it compiles a pattern
// with one of several backends and exposes the small surface the binding
// needs (offset match with a bounded group request, first/global replace,
// the group table and classified compile failures).
//
// Backends:
//   - [EngineCore] compiles with coregex, an accelerated RE2-compatible
//     engine. This is the default.
//   - [EngineRE2] compiles with wasilibs/go-re2, which runs RE2 itself.
//   - [EnginePCRE] compiles with [regexp2] for PCRE constructs.
//   - [EngineAuto] picks coregex unless the pattern needs PCRE features, in
//     which case it falls back to [regexp2].
//
// RE2-syntax backends share one front end built on [regexp/syntax], so
// compile failures carry the same [Code] whichever backend runs the
// pattern.
package regexp
