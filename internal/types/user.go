package types

// AuthenticatedUser is the request-scoped identity set by the auth
// middleware and read back by handlers. It is always passed explicitly,
// never held in package state.
type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}
