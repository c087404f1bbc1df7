package types

import "errors"

var ErrNotFound = errors.New("requested item not found")
var ErrConflict = errors.New("item already exists or conflict")
var ErrUnauthenticated = errors.New("authentication required or invalid credentials")
var ErrForbidden = errors.New("action forbidden")

// ErrAIConfig means the generative backend is not configured (missing API key).
// It is fatal for the AI endpoints only; every other feature degrades on its own.
var ErrAIConfig = errors.New("AI service not configured")
