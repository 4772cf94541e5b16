package persistence

import (
	"context"
	"errors"
	"fmt"

	"shipops-server/internal/infra/sql"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/persistence/internal"
	"shipops-server/internal/operations/usecases"
)

func NewTemplateRepository(orm sql.ORM) (*SimpleTemplateRepository, error) {
	if err := orm.AutoMigrate(&internal.WorkflowTemplate{}); err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleTemplateRepository{orm: orm}, nil
}

var _ usecases.TemplateRepository = (*SimpleTemplateRepository)(nil)

type SimpleTemplateRepository struct {
	orm sql.ORM
}

func (r *SimpleTemplateRepository) CreateTemplate(ctx context.Context, template domain.WorkflowTemplate) error {
	entity := internal.FromWorkflowTemplate(template)
	if err := r.orm.WithContext(ctx).Create(&entity).Error(); err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	return nil
}

func (r *SimpleTemplateRepository) Get(ctx context.Context, id domain.ID) (domain.WorkflowTemplate, error) {
	var entity internal.WorkflowTemplate
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", string(id)).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.WorkflowTemplate{}, usecases.ErrTemplateNotFound
	}

	if err != nil {
		return domain.WorkflowTemplate{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}
