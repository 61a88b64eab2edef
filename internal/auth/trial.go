package auth

import (
	"context"
	"time"

	"weshow/internal/domain/studio"
	apperrors "weshow/pkg/errors"

	"github.com/google/uuid"
)

// StudioGetter is the single read the trial check performs per request.
type StudioGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*studio.Studio, error)
}

// TrialChecker gates studio requests on account standing. Accounts inside the
// grace window always pass. Any lookup failure denies the request: this check
// fails closed.
type TrialChecker struct {
	studios StudioGetter
	grace   time.Duration
	now     func() time.Time
}

func NewTrialChecker(studios StudioGetter, grace time.Duration) *TrialChecker {
	return &TrialChecker{
		studios: studios,
		grace:   grace,
		now:     time.Now,
	}
}

// Check returns nil when the studio may proceed. The grace window is computed
// per request from CreatedAt, never persisted. Past the window only the
// active flag is consulted; trial-expiry enforcement beyond that flag is not
// implemented yet.
func (t *TrialChecker) Check(ctx context.Context, studioID uuid.UUID) error {
	s, err := t.studios.GetByID(ctx, studioID)
	if err != nil {
		return apperrors.Forbidden(msgTrialCheckFailed)
	}

	if t.now().Sub(s.CreatedAt) < t.grace {
		return nil
	}

	if !s.Active {
		return apperrors.AccountInactive(msgAccountInactive)
	}

	return nil
}
