package usecases

import (
	"context"
	"errors"

	"shipops-server/internal/operations/domain"
)

var ErrTemplateNotFound = errors.New("workflow template not found")

type TemplateRepository interface {
	CreateTemplate(context.Context, domain.WorkflowTemplate) error
	Get(context.Context, domain.ID) (domain.WorkflowTemplate, error)
}
