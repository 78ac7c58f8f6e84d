package domain

import (
	"context"
	"errors"
)

// Service appends immutable audit entries for state-changing operations.
type Service interface {
	Record(ctx context.Context, evento string, payload map[string]any) error
}

var ErrInvalidEvento = errors.New("invalid_evento")
