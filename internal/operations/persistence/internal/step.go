package internal

import (
	"encoding/json"
	"time"

	"shipops-server/internal/infra/utils"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/fieldschema"
)

// Step is the stored form of a workflow step. Schema, values, checklist and
// dependency structures are kept as JSON columns; the engine re-parses them
// on load.
type Step struct {
	ID                    string    `json:"id" gorm:"primaryKey"`
	ShipmentID            string    `json:"shipment_id" gorm:"index"`
	Name                  string    `json:"name"`
	Status                string    `json:"status"`
	Version               int64     `json:"version"`
	Schema                string    `json:"schema"`
	Values                string    `json:"values"`
	LegacyRequiredFields  string    `json:"legacy_required_fields"`
	RequiredDocumentTypes string    `json:"required_document_types"`
	ChecklistGroups       string    `json:"checklist_groups"`
	DependsOn             string    `json:"depends_on"`
	Notes                 string    `json:"notes"`
	HasCountdowns         bool      `json:"has_countdowns" gorm:"index"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (Step) TableName() string {
	return "shipment_steps"
}

func (s Step) ToDomain() domain.Step {
	step := domain.Step{
		ID:         domain.ID(s.ID),
		ShipmentID: domain.ID(s.ShipmentID),
		Name:       s.Name,
		Status:     domain.StepStatus(s.Status),
		Version:    domain.Version(s.Version),
		Schema:     fieldschema.ParseSchema([]byte(s.Schema)),
		Values:     fieldschema.ParseEnvelope([]byte(s.Values)),
		Notes:      s.Notes,
		CreatedAt:  utils.Time{Time: s.CreatedAt},
		UpdatedAt:  utils.Time{Time: s.UpdatedAt},
	}

	step.ChecklistGroups = fieldschema.ParseChecklistGroups([]byte(s.ChecklistGroups))

	var legacy []string
	if err := json.Unmarshal([]byte(s.LegacyRequiredFields), &legacy); err == nil {
		step.LegacyRequiredFields = legacy
	}

	var requiredDocs []string
	if err := json.Unmarshal([]byte(s.RequiredDocumentTypes), &requiredDocs); err == nil {
		step.RequiredDocumentTypes = requiredDocs
	}

	var dependsOn []string
	if err := json.Unmarshal([]byte(s.DependsOn), &dependsOn); err == nil {
		for _, id := range dependsOn {
			step.DependsOn = append(step.DependsOn, domain.ID(id))
		}
	}

	return step
}

func FromStep(value domain.Step) Step {
	schema, _ := json.Marshal(value.Schema)
	values, _ := value.Values.Marshal()
	legacy, _ := json.Marshal(value.LegacyRequiredFields)
	requiredDocs, _ := json.Marshal(value.RequiredDocumentTypes)
	checklist, _ := json.Marshal(value.ChecklistGroups)

	dependsOn := make([]string, 0, len(value.DependsOn))
	for _, id := range value.DependsOn {
		dependsOn = append(dependsOn, string(id))
	}
	dependsOnRaw, _ := json.Marshal(dependsOn)

	return Step{
		ID:                    string(value.ID),
		ShipmentID:            string(value.ShipmentID),
		Name:                  value.Name,
		Status:                string(value.Status),
		Version:               int64(value.Version),
		Schema:                string(schema),
		Values:                string(values),
		LegacyRequiredFields:  string(legacy),
		RequiredDocumentTypes: string(requiredDocs),
		ChecklistGroups:       string(checklist),
		DependsOn:             string(dependsOnRaw),
		Notes:                 value.Notes,
		HasCountdowns:         len(fieldschema.CountdownFields(value.EffectiveSchema(), value.Values.Values)) > 0,
		CreatedAt:             value.CreatedAt.Time,
		UpdatedAt:             value.UpdatedAt.Time,
	}
}
