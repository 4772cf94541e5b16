package domain

import (
	"errors"
	"time"

	"shipops-server/internal/infra/utils"
	"shipops-server/internal/operations/fieldschema"
)

// Step is one unit of a shipment's workflow: a dynamic field schema, its
// stored answers, the step's completion gates and its status.
type Step struct {
	ID                    ID
	ShipmentID            ID
	Name                  string
	Status                StepStatus
	Version               Version
	Schema                fieldschema.Schema
	Values                fieldschema.Envelope
	LegacyRequiredFields  []string
	RequiredDocumentTypes []string
	ChecklistGroups       []fieldschema.ChecklistGroup
	DependsOn             []ID
	Notes                 string
	CreatedAt             utils.Time
	UpdatedAt             utils.Time
}

// EffectiveSchema returns the stored schema, falling back to one
// synthesized from the legacy required-field names when none is stored.
func (s Step) EffectiveSchema() fieldschema.Schema {
	if len(s.Schema) > 0 {
		return s.Schema
	}

	return fieldschema.LegacySchema(s.LegacyRequiredFields)
}

func NewStepBuilder() *stepBuilder {
	return &stepBuilder{}
}

type stepBuilder struct {
	actions []stepHandler
}

type stepHandler func(v *Step) error

func (b *stepBuilder) WithShipment(value Shipment) *stepBuilder {
	b.actions = append(b.actions, func(s *Step) error {
		s.ShipmentID = value.ID
		return nil
	})
	return b
}

func (b *stepBuilder) WithName(value string) *stepBuilder {
	b.actions = append(b.actions, func(s *Step) error {
		s.Name = value
		return nil
	})
	return b
}

func (b *stepBuilder) WithSchema(value fieldschema.Schema) *stepBuilder {
	b.actions = append(b.actions, func(s *Step) error {
		s.Schema = value
		return nil
	})
	return b
}

func (b *stepBuilder) WithRequiredDocumentTypes(value []string) *stepBuilder {
	b.actions = append(b.actions, func(s *Step) error {
		s.RequiredDocumentTypes = value
		return nil
	})
	return b
}

func (b *stepBuilder) WithChecklistGroups(value []fieldschema.ChecklistGroup) *stepBuilder {
	b.actions = append(b.actions, func(s *Step) error {
		s.ChecklistGroups = value
		return nil
	})
	return b
}

func (b *stepBuilder) WithDependsOn(value []ID) *stepBuilder {
	b.actions = append(b.actions, func(s *Step) error {
		s.DependsOn = value
		return nil
	})
	return b
}

func (b *stepBuilder) Build() (Step, error) {
	now := utils.Time{Time: time.Now()}
	result := Step{
		ID:      ID(utils.GenerateUUID()),
		Status:  StepStatusPending,
		Version: 1,
		Values: fieldschema.Envelope{
			Values: map[string]any{},
			Freeze: fieldschema.FreezeMap{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Step{}, err
		}
	}

	if result.ShipmentID == "" {
		return Step{}, errors.New("shipment is required")
	}

	if result.Name == "" {
		return Step{}, errors.New("name is required")
	}

	return result, nil
}
