// Package errors provides error handling conventions for the featlint CLI.
//
// It defines sentinel errors for common failure conditions, an ExitError
// type carrying a process exit code, and exit code constants following
// standard Unix conventions.
//
// # Exit Codes
//
//   - ExitSuccess (0): command completed and no violations were found
//   - ExitUser (1): policy violations, malformed manifest, invalid input
//   - ExitSystem (2): system-related error (I/O, permissions)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and an optional
// suggestion. Use [Code] to extract the exit code from an error chain:
//
//	if err := commands.Execute(); err != nil {
//	    os.Exit(errors.Code(err))
//	}
package errors
