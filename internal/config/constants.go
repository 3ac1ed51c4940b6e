package config

const SourceFileExt = ".poly"

// ConfigFileNames are the project configuration files looked up by FindConfig.
var ConfigFileNames = []string{"polymodal.yaml", "polymodal.yml"}

// Version is reported by the CLI.
const Version = "0.3.0"

// Built-in function names
const (
	RangeFuncName  = "range"
	LenFuncName    = "len"
	StrFuncName    = "str"
	TypeOfFuncName = "type_of"
	PushFuncName   = "push"
)

// BuiltinFunctions lists every name resolved without a declaration.
var BuiltinFunctions = []string{
	RangeFuncName,
	LenFuncName,
	StrFuncName,
	TypeOfFuncName,
	PushFuncName,
}

// IsBuiltinFunction reports whether name is a built-in function.
func IsBuiltinFunction(name string) bool {
	for _, b := range BuiltinFunctions {
		if b == name {
			return true
		}
	}
	return false
}

// Receiver name bound inside actor and contract methods.
const SelfName = "self"

// WildcardName is the pattern that matches anything without binding.
const WildcardName = "_"

// Runtime defaults
const (
	DefaultMaxCallDepth = 10000
	MaxPatternDepth     = 100
	MaxRangeLength      = 1 << 22 // elements range() may materialize
)

// Backend targets
const (
	TargetAST = "ast"
)
