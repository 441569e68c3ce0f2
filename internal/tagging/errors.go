package tagging

import "errors"

// ErrTagSpaceExhausted is returned when a base tag and all 26 suffixed
// variants are already taken. Callers treat it like a detected duplicate:
// skip the unit, never crash the run.
var ErrTagSpaceExhausted = errors.New("tag space exhausted: all suffixes A-Z taken")
