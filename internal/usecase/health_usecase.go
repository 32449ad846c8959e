package usecase

import "context"

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	deps map[string]func(context.Context) error
}

// NewHealthUsecase reports on each named dependency. A nil probe is
// reported as "disabled" and does not fail the check.
func NewHealthUsecase(deps map[string]func(context.Context) error) HealthUsecase {
	return &healthUsecase{deps: deps}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{"status": "ok"}
	healthy := true
	for name, probe := range u.deps {
		switch {
		case probe == nil:
			status[name] = "disabled"
		case probe(ctx) != nil:
			status[name] = "down"
			healthy = false
		default:
			status[name] = "up"
		}
	}
	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}
