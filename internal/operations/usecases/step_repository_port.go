package usecases

import (
	"context"
	"errors"

	"shipops-server/internal/operations/domain"
)

var (
	ErrStepNotFound   = errors.New("step not found")
	ErrStepDuplicated = errors.New("step already exists")
)

type StepRepository interface {
	CreateStep(context.Context, domain.Step) error
	UpdateStep(context.Context, domain.Step) error
	Get(context.Context, domain.ID) (domain.Step, error)
	FindByShipment(context.Context, domain.ID) ([]domain.Step, error)
	// FindActiveWithCountdowns returns every step not yet done whose schema
	// declares at least one countdown field.
	FindActiveWithCountdowns(context.Context) ([]domain.Step, error)
}
