// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task, full signal list).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a Google Tasks API or network error.
	BackendError = 3

	// StorageError indicates the local task database could not be opened or written.
	StorageError = 4
)
