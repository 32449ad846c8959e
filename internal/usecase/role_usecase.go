package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"hireable-backend/internal/domain"
	"hireable-backend/pkg/apperror"
	"hireable-backend/pkg/content"
	"hireable-backend/pkg/security"
)

const (
	RedirectHome         = "/"
	RedirectUnauthorized = "/unauthorized"
	RedirectAccessDenied = "/access-denied"
)

type roleUsecase struct {
	userRepo domain.UserRepository
	audit    *security.AuditLogger
	now      func() time.Time
}

func NewRoleUsecase(userRepo domain.UserRepository, audit *security.AuditLogger) domain.RoleUsecase {
	if audit == nil {
		audit = security.NopAuditLogger()
	}
	return &roleUsecase{userRepo: userRepo, audit: audit, now: time.Now}
}

func (u *roleUsecase) RoleForEmail(ctx context.Context, email string) (domain.Role, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return domain.RoleNone, apperror.Internal(err)
	}
	if user == nil {
		return domain.RoleNone, nil
	}
	return user.Role, nil
}

func (u *roleUsecase) CurrentRole(ctx context.Context) (domain.Role, error) {
	id, ok := domain.IdentityFrom(ctx)
	if !ok {
		return domain.RoleNone, apperror.Unauthorized("User not authenticated")
	}
	return u.RoleForEmail(ctx, id.Email)
}

func (u *roleUsecase) AssignRole(ctx context.Context, email, name string, role domain.Role) error {
	if !role.Valid() {
		return fail(http.StatusBadRequest, content.KeyErrInvalidRole)
	}
	existing, err := u.RoleForEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != domain.RoleNone {
		return fail(http.StatusConflict, content.KeyErrRoleExists)
	}
	if err := u.userRepo.Create(ctx, &domain.User{
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: u.now(),
	}); err != nil {
		return err
	}
	u.audit.RoleAssigned(ctx, email, string(role))
	return nil
}

func (u *roleUsecase) AssignCurrentRole(ctx context.Context, role domain.Role) error {
	id, ok := domain.IdentityFrom(ctx)
	if !ok {
		return apperror.Unauthorized("User not authenticated")
	}
	return u.AssignRole(ctx, id.Email, id.Name, role)
}

// ResolveSignIn runs after the IdP callback. A first sign-in gets the role
// of the area the user came from. Later sign-ins into the other area are
// turned away.
func (u *roleUsecase) ResolveSignIn(ctx context.Context, intended domain.Role, redirect string) (*domain.SignInDecision, error) {
	id, ok := domain.IdentityFrom(ctx)
	if !ok {
		return &domain.SignInDecision{Redirect: RedirectHome}, nil
	}
	redirect = safeRedirect(redirect)

	existing, err := u.RoleForEmail(ctx, id.Email)
	if err != nil {
		return nil, err
	}

	switch {
	case existing == domain.RoleNone && intended.Valid():
		if err := u.AssignRole(ctx, id.Email, id.Name, intended); err != nil {
			return nil, err
		}
		return &domain.SignInDecision{Redirect: redirect, Role: intended, Assigned: true}, nil
	case existing == domain.RoleNone:
		return &domain.SignInDecision{Redirect: RedirectHome}, nil
	case intended == domain.RoleNone || intended == existing:
		return &domain.SignInDecision{Redirect: redirect, Role: existing}, nil
	}

	u.audit.RoleMismatch(ctx, id.Email, string(existing), string(intended))
	if intended == domain.RoleRecruiter {
		return &domain.SignInDecision{Redirect: RedirectUnauthorized, Role: existing}, nil
	}
	return &domain.SignInDecision{Redirect: RedirectAccessDenied, Role: existing}, nil
}

// safeRedirect keeps redirects on this site.
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return RedirectHome
	}
	return target
}
