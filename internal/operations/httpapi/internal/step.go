package internal

import (
	"encoding/base64"
	"fmt"
	"time"

	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/fieldschema"
	"shipops-server/internal/operations/usecases"
)

type StepCreateRequest struct {
	Name                  string                       `json:"name"`
	Schema                fieldschema.Schema           `json:"schema,omitempty"`
	RequiredDocumentTypes []string                     `json:"required_document_types,omitempty"`
	ChecklistGroups       []fieldschema.ChecklistGroup `json:"checklist_groups,omitempty"`
	DependsOn             []string                     `json:"depends_on,omitempty"`
}

type StepEditRequest struct {
	Updates         []FieldUpdate    `json:"updates,omitempty"`
	Removals        []string         `json:"removals,omitempty"`
	Uploads         []DocumentUpload `json:"uploads,omitempty"`
	RequestedStatus string           `json:"requested_status,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

type FieldUpdate struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// DocumentUpload carries a file inline, base64 encoded, the way browser
// clients submit attachments alongside form values.
type DocumentUpload struct {
	DocumentType string `json:"document_type"`
	FileName     string `json:"file_name"`
	Content      string `json:"content"`
}

func (r StepEditRequest) ToStepEdit(shipmentID, stepID domain.ID) (usecases.StepEdit, error) {
	edit := usecases.StepEdit{
		ShipmentID:      shipmentID,
		StepID:          stepID,
		RequestedStatus: domain.StepStatus(r.RequestedStatus),
		Notes:           r.Notes,
	}

	for _, update := range r.Updates {
		edit.Updates = append(edit.Updates, fieldschema.Update{
			Path:  fieldschema.DecodePath(update.Path),
			Value: update.Value,
		})
	}

	for _, removal := range r.Removals {
		edit.Removals = append(edit.Removals, fieldschema.DecodePath(removal))
	}

	for _, upload := range r.Uploads {
		content, err := base64.StdEncoding.DecodeString(upload.Content)
		if err != nil {
			return usecases.StepEdit{}, fmt.Errorf("decoding upload %q: %w", upload.FileName, err)
		}
		edit.Uploads = append(edit.Uploads, usecases.DocumentUpload{
			DocumentType: upload.DocumentType,
			FileName:     upload.FileName,
			Content:      content,
		})
	}

	return edit, nil
}

type StepResponse struct {
	ID                    string                       `json:"id"`
	ShipmentID            string                       `json:"shipment_id"`
	Name                  string                       `json:"name"`
	Status                string                       `json:"status"`
	Version               int64                        `json:"version"`
	Values                map[string]any               `json:"values"`
	RequiredDocumentTypes []string                     `json:"required_document_types,omitempty"`
	ChecklistGroups       []fieldschema.ChecklistGroup `json:"checklist_groups,omitempty"`
	DependsOn             []string                     `json:"depends_on,omitempty"`
	Notes                 string                       `json:"notes,omitempty"`
	CreatedAt             string                       `json:"created_at"`
	UpdatedAt             string                       `json:"updated_at"`
}

func FromStep(value domain.Step) StepResponse {
	dependsOn := make([]string, 0, len(value.DependsOn))
	for _, id := range value.DependsOn {
		dependsOn = append(dependsOn, id.String())
	}

	return StepResponse{
		ID:                    value.ID.String(),
		ShipmentID:            value.ShipmentID.String(),
		Name:                  value.Name,
		Status:                string(value.Status),
		Version:               int64(value.Version),
		Values:                value.Values.Values,
		RequiredDocumentTypes: value.RequiredDocumentTypes,
		ChecklistGroups:       value.ChecklistGroups,
		DependsOn:             dependsOn,
		Notes:                 value.Notes,
		CreatedAt:             value.CreatedAt.Time.Format(time.RFC3339),
		UpdatedAt:             value.UpdatedAt.Time.Format(time.RFC3339),
	}
}

type StepEditResponse struct {
	Step                       StepResponse `json:"step"`
	Outcome                    string       `json:"outcome"`
	MissingFieldPaths          []string     `json:"missing_field_paths,omitempty"`
	MissingDocumentTypes       []string     `json:"missing_document_types,omitempty"`
	UnsatisfiedChecklistGroups []string     `json:"unsatisfied_checklist_groups,omitempty"`
	UnmetDependencies          []string     `json:"unmet_dependencies,omitempty"`
}

func FromEditResult(value usecases.EditResult) StepEditResponse {
	unmet := make([]string, 0, len(value.UnmetDependencies))
	for _, id := range value.UnmetDependencies {
		unmet = append(unmet, id.String())
	}

	return StepEditResponse{
		Step:                       FromStep(value.Step),
		Outcome:                    string(value.Outcome),
		MissingFieldPaths:          value.MissingFieldPaths,
		MissingDocumentTypes:       value.MissingDocumentTypes,
		UnsatisfiedChecklistGroups: value.UnsatisfiedChecklistGroups,
		UnmetDependencies:          unmet,
	}
}
