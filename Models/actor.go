package Models

import "fmt"

type Role string

const (
	RoleUser   Role = "user"
	RoleDoctor Role = "doctor"
	RoleAdmin  Role = "admin"
)

// Actor is the verified identity of the request maker. It is resolved once
// from the JWT by the middleware and passed into every lifecycle operation;
// controllers never read identity from ambient state.
type Actor struct {
	Role Role `json:"role"`
	ID   uint `json:"id"`
}

func (a Actor) IsUser() bool   { return a.Role == RoleUser }
func (a Actor) IsDoctor() bool { return a.Role == RoleDoctor }
func (a Actor) IsAdmin() bool  { return a.Role == RoleAdmin }

func (a Actor) String() string {
	return fmt.Sprintf("%s:%d", a.Role, a.ID)
}
