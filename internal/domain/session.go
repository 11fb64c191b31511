package domain

// Session is the identity capability handed to components that gate actions
// on the current user. It is populated once at startup from the external
// auth provider and passed explicitly; no package reads it from a global.
// No authorization logic lives in this module beyond consulting Admin.
type Session struct {
	User  string `json:"user"`
	Admin bool   `json:"admin"`
}
