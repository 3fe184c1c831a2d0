package model

// Scope identifies who a request acts on behalf of.
// The zero Scope is the single local user of the CLI.
type Scope struct {
	UserID   string
	Username string
}

// IsLocal reports whether the scope is the anonymous single-user scope.
func (s Scope) IsLocal() bool {
	return s.UserID == ""
}
