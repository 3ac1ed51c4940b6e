package diagnostics

type ErrorCode string

const (
	// Load-time
	ErrH001 ErrorCode = "H001" // Missing [Compiled]/[Interpreted] header

	// Parser
	ErrP001 ErrorCode = "P001" // Skipped unexpected token during recovery

	// Type checker
	ErrT001 ErrorCode = "T001" // Type mismatch
	ErrT002 ErrorCode = "T002" // Unknown type name
	ErrT003 ErrorCode = "T003" // Undefined variable
	ErrT004 ErrorCode = "T004" // Condition is not bool
	ErrT005 ErrorCode = "T005" // Value is not iterable
	ErrT006 ErrorCode = "T006" // Invalid index expression
	ErrT007 ErrorCode = "T007" // Wrong argument count or argument type
	ErrT008 ErrorCode = "T008" // Unknown function
	ErrT009 ErrorCode = "T009" // Invalid member access
	ErrT010 ErrorCode = "T010" // Invalid operand types
	ErrT011 ErrorCode = "T011" // Constant violation

	WarnW001 ErrorCode = "W001" // Type could not be inferred
	WarnW002 ErrorCode = "W002" // Mixed element types in literal
	WarnW003 ErrorCode = "W003" // Divergent if/else branch types

	// Ownership checker
	ErrO001 ErrorCode = "O001" // Use of moved value

	// Runtime
	ErrR001 ErrorCode = "R001" // Runtime error
	WarnR002 ErrorCode = "R002" // Non-exhaustive match

	// Configuration
	ErrC001 ErrorCode = "C001" // Invalid configuration
)
