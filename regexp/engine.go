package regexp

// Engine selects the backend a pattern is compiled with.
type Engine int

const (
	// EngineCore compiles with coregex.
	EngineCore Engine = iota
	// EngineRE2 compiles with wasilibs/go-re2.
	EngineRE2
	// EnginePCRE compiles with regexp2.
	EnginePCRE
	// EngineAuto compiles with coregex, or regexp2 when the pattern uses
	// PCRE-only constructs.
	EngineAuto
)

var engineNames = [...]string{
	EngineCore: "core",
	EngineRE2:  "re2",
	EnginePCRE: "pcre",
	EngineAuto: "auto",
}

func (e Engine) String() string {
	if e < 0 || int(e) >= len(engineNames) {
		return "unknown"
	}

	return engineNames[e]
}

// ParseEngine returns the Engine named s.
func ParseEngine(s string) (Engine, bool) {
	for i, name := range engineNames {
		if name == s {
			return Engine(i), true
		}
	}

	return 0, false
}
