package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK Code = "OK"

	// CodeNotFound marks a required input file that does not exist
	// (cached spell data, deck file).
	CodeNotFound Code = "NOT_FOUND"

	// CodeUnauthenticated marks a missing external-service credential.
	CodeUnauthenticated Code = "UNAUTHENTICATED"

	// CodeInvalidArgument marks fatal input errors such as a non-integer
	// level filter token or interactive selection token.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeMalformedRecord marks a single bad record. Callers drop the
	// record and keep going.
	CodeMalformedRecord Code = "MALFORMED_RECORD"

	// CodeUnavailable marks a failed call to an external service.
	CodeUnavailable Code = "UNAVAILABLE"

	// CodeEmptyResult marks a stage that produced nothing to work with.
	CodeEmptyResult Code = "EMPTY_RESULT"

	// CodeCanceled marks an operation stopped by the user or a context.
	CodeCanceled Code = "CANCELED"

	CodeInternal Code = "INTERNAL"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// ExitCode returns the process exit status the CLI reports for the code
func (c Code) ExitCode() int {
	switch c {
	case CodeOK:
		return 0
	case CodeInvalidArgument:
		return 2
	case CodeNotFound:
		return 3
	case CodeUnauthenticated:
		return 4
	case CodeEmptyResult:
		return 5
	case CodeUnavailable:
		return 6
	case CodeCanceled:
		return 130
	default:
		return 1
	}
}
