package picker

import (
	"context"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.ImagePicker = (*Unavailable)(nil)

// Unavailable is the picker used when there is no way to ask the user, e.g.
// stdin is not a terminal and no --image path was given.
type Unavailable struct {
	reason string
	log    *logger.Logger
}

// NewUnavailable creates a picker that always errors with reason.
func NewUnavailable(reason string, log *logger.Logger) *Unavailable {
	return &Unavailable{reason: reason, log: log}
}

// Pick always reports an error.
func (u *Unavailable) Pick(ctx context.Context, opts domain.PickOptions) domain.PickResult {
	u.log.Debug("picker unavailable: %s", u.reason)
	return domain.Errored("image picker unavailable: " + u.reason)
}
