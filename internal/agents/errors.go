package agents

import "errors"

// ErrUnknownPersona is returned when a caller names a persona that does not exist.
var ErrUnknownPersona = errors.New("unknown persona")

// ErrAllExpertsFailed is returned when every persona in a consultation produced
// the error variant.
var ErrAllExpertsFailed = errors.New("all expert consultations failed")
