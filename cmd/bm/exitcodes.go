package main

// Exit codes shared by all bm commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid paths)
	ExitDataError   = 3 // Data error (malformed store or import input)
	ExitNotFound    = 4 // No bookmark matched the requested key
)
