package internal

import (
	"encoding/json"
	"time"

	"shipops-server/internal/infra/utils"
	"shipops-server/internal/operations/domain"
)

type WorkflowTemplate struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name"`
	GlobalVariableIDs string    `json:"global_variable_ids"`
	Version           int64     `json:"version"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (WorkflowTemplate) TableName() string {
	return "workflow_templates"
}

func (t WorkflowTemplate) ToDomain() domain.WorkflowTemplate {
	template := domain.WorkflowTemplate{
		ID:        domain.ID(t.ID),
		Name:      t.Name,
		Version:   domain.Version(t.Version),
		CreatedAt: utils.Time{Time: t.CreatedAt},
		UpdatedAt: utils.Time{Time: t.UpdatedAt},
	}

	var globalIDs []string
	if err := json.Unmarshal([]byte(t.GlobalVariableIDs), &globalIDs); err == nil {
		template.GlobalVariableIDs = globalIDs
	}

	return template
}

func FromWorkflowTemplate(value domain.WorkflowTemplate) WorkflowTemplate {
	globalIDs, _ := json.Marshal(value.GlobalVariableIDs)

	return WorkflowTemplate{
		ID:                string(value.ID),
		Name:              value.Name,
		GlobalVariableIDs: string(globalIDs),
		Version:           int64(value.Version),
		CreatedAt:         value.CreatedAt.Time,
		UpdatedAt:         value.UpdatedAt.Time,
	}
}
