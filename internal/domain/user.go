package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleNone      Role = ""
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

func (r Role) Valid() bool { return r == RoleCandidate || r == RoleRecruiter }

// User is the local role record keyed by the IdP email.
type User struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the already-resolved caller as supplied by the auth layer.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Role    Role
}

// SignInDecision is where the role handler sends the browser next.
type SignInDecision struct {
	Redirect string
	Role     Role
	Assigned bool
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type RoleUsecase interface {
	// RoleForEmail looks up the role of an explicit identity.
	RoleForEmail(ctx context.Context, email string) (Role, error)
	// CurrentRole looks up the role of the caller on ctx.
	CurrentRole(ctx context.Context) (Role, error)
	// AssignRole creates a user with a role for an explicit identity.
	AssignRole(ctx context.Context, email, name string, role Role) error
	// AssignCurrentRole creates the caller's user record with a role.
	AssignCurrentRole(ctx context.Context, role Role) error
	ResolveSignIn(ctx context.Context, intended Role, redirect string) (*SignInDecision, error)
}
