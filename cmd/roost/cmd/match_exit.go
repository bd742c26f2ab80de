package cmd

// matchExit is returned by match to signal a specific exit code without
// printing an error. Same convention as grep: 0=match, 1=no match.
type matchExit struct{ code int }

func (e matchExit) Error() string {
	if e.code == 1 {
		return "no match"
	}
	return ""
}

// ExitCode extracts the exit code from a matchExit error.
// Returns -1 if the error is not a matchExit.
func ExitCode(err error) int {
	if me, ok := err.(matchExit); ok {
		return me.code
	}
	return -1
}
