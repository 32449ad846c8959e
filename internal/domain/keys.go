package domain

import "context"

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserName  CtxKey = "Name"
	KeyUserRole  CtxKey = "Role"
	KeyRequestID CtxKey = "RequestID"
)

// WithIdentity stores the caller on ctx under the same keys the HTTP
// middleware sets on the gin context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	ctx = context.WithValue(ctx, KeyUserID, id.Subject)
	ctx = context.WithValue(ctx, KeyUserEmail, id.Email)
	ctx = context.WithValue(ctx, KeyUserName, id.Name)
	return context.WithValue(ctx, KeyUserRole, string(id.Role))
}

// IdentityFrom reads the caller back. ok is false when no email is present.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	email, _ := ctx.Value(KeyUserEmail).(string)
	if email == "" {
		return Identity{}, false
	}
	sub, _ := ctx.Value(KeyUserID).(string)
	name, _ := ctx.Value(KeyUserName).(string)
	role, _ := ctx.Value(KeyUserRole).(string)
	return Identity{Subject: sub, Email: email, Name: name, Role: Role(role)}, true
}
