package identity

import "strings"

// Operator is one entry of the platform-operator allow-list: a hard-wired
// account granted unconditional access, independent of the role system.
// Operators sign in with a literal, configured email address rather than a
// synthesized one.
type Operator struct {
	Username string
	Email    string
}

// Operators resolves platform-operator status. It is built once from
// configuration at startup; guard checks consume the boolean stored on the
// session instead of re-deriving it by string comparison.
type Operators struct {
	byUsername map[string]Operator
}

// NewOperators builds the allow-list from configured entries. Usernames are
// matched case-insensitively. Entries without both a username and an email
// are ignored.
func NewOperators(entries []Operator) *Operators {
	byUsername := make(map[string]Operator, len(entries))
	for _, e := range entries {
		if e.Username == "" || e.Email == "" {
			continue
		}
		byUsername[strings.ToLower(e.Username)] = e
	}

	return &Operators{byUsername: byUsername}
}

// Lookup returns the operator entry for username, if any.
func (o *Operators) Lookup(username string) (Operator, bool) {
	op, ok := o.byUsername[strings.ToLower(strings.TrimSpace(username))]
	return op, ok
}

// LookupByEmail returns the operator entry whose configured literal email
// matches, if any.
func (o *Operators) LookupByEmail(email string) (Operator, bool) {
	email = strings.TrimSpace(email)
	for _, op := range o.byUsername {
		if strings.EqualFold(op.Email, email) {
			return op, true
		}
	}
	return Operator{}, false
}

// ResolveLoginEmail returns the email the backend expects for username:
// the configured literal address for operators, the synthesized address for
// everyone else.
func (o *Operators) ResolveLoginEmail(username, organizationID string) (email string, isOperator bool) {
	if op, ok := o.Lookup(username); ok {
		return op.Email, true
	}

	return ResolveEmail(username, organizationID), false
}
