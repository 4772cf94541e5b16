package domain

import (
	"errors"
	"time"

	"shipops-server/internal/infra/utils"
)

// Shipment is the root the workflow hangs off: steps, documents, goods and
// the shipment-wide global variables linked date fields write into.
type Shipment struct {
	ID           ID
	Reference    string
	TemplateID   ID
	GlobalValues map[string]string
	Version      Version
	CreatedAt    utils.Time
	UpdatedAt    utils.Time
}

func NewShipmentBuilder() *shipmentBuilder {
	return &shipmentBuilder{}
}

type shipmentBuilder struct {
	actions []shipmentHandler
}

type shipmentHandler func(v *Shipment) error

func (b *shipmentBuilder) WithReference(value string) *shipmentBuilder {
	b.actions = append(b.actions, func(s *Shipment) error {
		s.Reference = value
		return nil
	})
	return b
}

func (b *shipmentBuilder) WithTemplate(value WorkflowTemplate) *shipmentBuilder {
	b.actions = append(b.actions, func(s *Shipment) error {
		s.TemplateID = value.ID
		return nil
	})
	return b
}

func (b *shipmentBuilder) Build() (Shipment, error) {
	now := utils.Time{Time: time.Now()}
	result := Shipment{
		ID:           ID(utils.GenerateUUID()),
		Version:      1,
		GlobalValues: map[string]string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Shipment{}, err
		}
	}

	if result.Reference == "" {
		return Shipment{}, errors.New("reference is required")
	}

	return result, nil
}

// WorkflowTemplate declares which steps a shipment runs and which global
// variable ids its linked date fields may write. Step instantiation itself
// is outside the engine's scope; the allow-list is what the global-link
// sync consults.
type WorkflowTemplate struct {
	ID                ID
	Name              string
	GlobalVariableIDs []string
	Version           Version
	CreatedAt         utils.Time
	UpdatedAt         utils.Time
}

// ShipmentException is an operational problem raised on a shipment. An open
// blocking exception gates every step's transition into done.
type ShipmentException struct {
	ID          ID
	ShipmentID  ID
	Description string
	Blocking    bool
	Status      ExceptionStatus
	CreatedAt   utils.Time
	UpdatedAt   utils.Time
}

func (e ShipmentException) OpenAndBlocking() bool {
	return e.Blocking && e.Status == ExceptionStatusOpen
}
