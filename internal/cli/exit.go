package cli

// Exit codes, following sysexits.h.
const (
	ExitOK     = 0
	ExitUsage  = 64 // bad flags or arguments
	ExitIOErr  = 74 // any store failure
	ExitConfig = 78 // configuration could not be loaded
)
