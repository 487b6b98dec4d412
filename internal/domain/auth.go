package domain

// Identity is the result of resolving a bearer credential: who the caller is,
// before any role or permission lookup.
type Identity struct {
	ID            string
	Email         string
	EmailVerified bool
}
