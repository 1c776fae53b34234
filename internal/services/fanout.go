package services

// SecondaryFailure records one failed best-effort update that followed a
// successful primary write. Operations that fan out across collections
// return these instead of rolling back, so callers always learn about
// partial success.
type SecondaryFailure struct {
	Step string
	Err  error
}

func (f SecondaryFailure) Error() string {
	return f.Step + ": " + f.Err.Error()
}

// Messages renders failures for API responses.
func Messages(failures []SecondaryFailure) []string {
	if len(failures) == 0 {
		return nil
	}
	msgs := make([]string, len(failures))
	for i, f := range failures {
		msgs[i] = f.Error()
	}
	return msgs
}
