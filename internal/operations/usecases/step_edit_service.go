package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shipops-server/internal/infra/async"
	"shipops-server/internal/infra/utils"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/fieldschema"
)

const (
	// TopicStepEvents is the internal broker topic websocket subscribers
	// listen on.
	TopicStepEvents async.BrokerTopicName = "step_events"

	EventStepUpdated = "step_updated"
)

var errUnknown = errors.New("unknown error")

// StepEdit is one partial form submission against a step: value updates and
// removals, document uploads, an optional requested status transition and an
// optional notes change. Everything in it is applied in a single pass.
type StepEdit struct {
	ShipmentID      domain.ID
	StepID          domain.ID
	Updates         []fieldschema.Update
	Removals        []fieldschema.Path
	Uploads         []DocumentUpload
	RequestedStatus domain.StepStatus
	Notes           *string
}

type DocumentUpload struct {
	DocumentType string
	FileName     string
	Content      []byte
}

// EditResult reports what the edit did: the saved step, the status outcome
// and whatever is still missing for completion.
type EditResult struct {
	Step                       domain.Step
	Outcome                    domain.StatusOutcome
	MissingFieldPaths          []string
	MissingDocumentTypes       []string
	UnsatisfiedChecklistGroups []string
	UnmetDependencies          []domain.ID
}

func NewStepService(
	stepRepository StepRepository,
	shipmentRepository ShipmentRepository,
	templateRepository TemplateRepository,
	exceptionRepository ExceptionRepository,
	documentService DocumentService,
	goodsRepository GoodsRepository,
	broker async.InternalBroker,
) *SimpleStepService {
	return &SimpleStepService{
		stepRepository:      stepRepository,
		shipmentRepository:  shipmentRepository,
		templateRepository:  templateRepository,
		exceptionRepository: exceptionRepository,
		documentService:     documentService,
		goodsRepository:     goodsRepository,
		broker:              broker,
	}
}

var _ StepService = (*SimpleStepService)(nil)

type SimpleStepService struct {
	stepRepository      StepRepository
	shipmentRepository  ShipmentRepository
	templateRepository  TemplateRepository
	exceptionRepository ExceptionRepository
	documentService     DocumentService
	goodsRepository     GoodsRepository
	broker              async.InternalBroker
}

func (s *SimpleStepService) CreateStep(ctx context.Context, step domain.Step) error {
	if err := s.stepRepository.CreateStep(ctx, step); err != nil {
		slog.Error("creating step", slog.String("error", err.Error()))
		return errUnknown
	}

	return nil
}

func (s *SimpleStepService) GetStep(ctx context.Context, id domain.ID) (domain.Step, error) {
	step, err := s.stepRepository.Get(ctx, id)
	if errors.Is(err, ErrStepNotFound) {
		return domain.Step{}, ErrStepNotFound
	}
	if err != nil {
		slog.Error("getting step", slog.String("error", err.Error()))
		return domain.Step{}, errUnknown
	}

	return step, nil
}

func (s *SimpleStepService) StepsByShipment(ctx context.Context, shipmentID domain.ID) ([]domain.Step, error) {
	steps, err := s.stepRepository.FindByShipment(ctx, shipmentID)
	if err != nil {
		slog.Error("getting steps by shipment",
			slog.String("shipment_id", string(shipmentID)),
			slog.String("error", err.Error()))
		return nil, errUnknown
	}

	return steps, nil
}

// ApplyEdit runs the whole edit pipeline: merge, upload registration,
// requirement evaluation, freeze recomputation across the shipment's steps,
// global sync, status decision, allocation on completion, persistence and
// event publication. Value edits commit even when the requested status is
// refused.
func (s *SimpleStepService) ApplyEdit(ctx context.Context, edit StepEdit) (EditResult, error) {
	snap, err := s.loadSnapshots(ctx, edit)
	if err != nil {
		return EditResult{}, err
	}

	now := time.Now()
	step := snap.step
	merged := fieldschema.Merge(step.Values.Values, edit.Updates, edit.Removals)

	documents, docs, err := s.buildUploads(edit, snap.docs, now)
	if err != nil {
		return EditResult{}, err
	}

	schema := step.EffectiveSchema()
	evaluation := fieldschema.Evaluate(schema, string(step.ID), merged, docs)
	missingDocs := missingDocumentTypes(step.RequiredDocumentTypes, docs)
	unsatisfied := fieldschema.EvaluateChecklist(step.ChecklistGroups, string(step.ID), merged, docs)

	trees := siblingTrees(snap.siblings)
	trees[string(step.ID)] = merged
	lookup := func(stepID string) (map[string]any, bool) {
		tree, ok := trees[stepID]
		return tree, ok
	}

	freeze, _ := fieldschema.RecomputeFreeze(schema, merged, step.Values.Freeze, lookup, now)
	changedSiblings := recomputeSiblingFreezes(snap.siblings, step.ID, lookup, now)

	globals, globalsChanged := fieldschema.SyncGlobals(schema, merged, snap.allowList, snap.shipment.GlobalValues)

	gates := domain.CompletionGates{
		MissingFieldPaths:          evaluation.MissingPaths(),
		MissingDocumentTypes:       missingDocs,
		UnsatisfiedChecklistGroups: unsatisfied,
		UnmetDependencies:          unmetDependencies(step, snap.siblings),
		OpenBlockingException:      snap.openBlockingException,
	}
	status, outcome := domain.DecideStatus(step.Status, edit.RequestedStatus, gates)
	newlyDone := status == domain.StepStatusDone && step.Status != domain.StepStatusDone

	if newlyDone {
		allocations := fieldschema.ExtractAllocations(schema, merged)
		if len(allocations) > 0 {
			if err := s.goodsRepository.ApplyAllocations(ctx, snap.shipment.ID, step.ID, allocations); err != nil {
				slog.Error("applying goods allocations",
					slog.String("step_id", string(step.ID)),
					slog.String("error", err.Error()))
				return EditResult{}, fmt.Errorf("applying goods allocations: %w", err)
			}
		}
	}

	step.Values = fieldschema.Envelope{Values: merged, Freeze: freeze}
	step.Status = status
	if edit.Notes != nil {
		step.Notes = *edit.Notes
	}
	step.Version++
	step.UpdatedAt = utils.Time{Time: now}

	if err := s.persist(ctx, step, changedSiblings, snap.shipment, globals, globalsChanged, documents, now); err != nil {
		return EditResult{}, err
	}

	if err := s.broker.Publish(ctx, TopicStepEvents, async.BrokerMessage{
		Event: EventStepUpdated,
		Value: step,
	}); err != nil {
		slog.Warn("publishing step event", slog.String("error", err.Error()))
	}

	return EditResult{
		Step:                       step,
		Outcome:                    outcome,
		MissingFieldPaths:          gates.MissingFieldPaths,
		MissingDocumentTypes:       gates.MissingDocumentTypes,
		UnsatisfiedChecklistGroups: gates.UnsatisfiedChecklistGroups,
		UnmetDependencies:          gates.UnmetDependencies,
	}, nil
}

type editSnapshots struct {
	step                  domain.Step
	siblings              []domain.Step
	shipment              domain.Shipment
	allowList             []string
	docs                  fieldschema.DocumentSet
	openBlockingException bool
}

func (s *SimpleStepService) loadSnapshots(ctx context.Context, edit StepEdit) (editSnapshots, error) {
	var snap editSnapshots

	step, err := s.stepRepository.Get(ctx, edit.StepID)
	if errors.Is(err, ErrStepNotFound) {
		return snap, ErrStepNotFound
	}
	if err != nil {
		return snap, fmt.Errorf("loading step: %w", err)
	}
	if step.ShipmentID != edit.ShipmentID {
		return snap, ErrStepNotFound
	}
	snap.step = step

	snap.siblings, err = s.stepRepository.FindByShipment(ctx, edit.ShipmentID)
	if err != nil {
		return snap, fmt.Errorf("loading sibling steps: %w", err)
	}

	snap.shipment, err = s.shipmentRepository.Get(ctx, edit.ShipmentID)
	if errors.Is(err, ErrShipmentNotFound) {
		return snap, ErrShipmentNotFound
	}
	if err != nil {
		return snap, fmt.Errorf("loading shipment: %w", err)
	}

	if snap.shipment.TemplateID != "" {
		template, err := s.templateRepository.Get(ctx, snap.shipment.TemplateID)
		switch {
		case errors.Is(err, ErrTemplateNotFound):
			// No template means no globals are linkable.
		case err != nil:
			return snap, fmt.Errorf("loading template: %w", err)
		default:
			snap.allowList = template.GlobalVariableIDs
		}
	}

	snap.docs, err = s.documentService.ReceivedDocumentTypes(ctx, edit.ShipmentID)
	if err != nil {
		return snap, fmt.Errorf("loading received document types: %w", err)
	}

	exceptions, err := s.exceptionRepository.FindOpenByShipment(ctx, edit.ShipmentID)
	if err != nil {
		return snap, fmt.Errorf("loading exceptions: %w", err)
	}
	for _, exception := range exceptions {
		if exception.OpenAndBlocking() {
			snap.openBlockingException = true
			break
		}
	}

	return snap, nil
}

// buildUploads turns the request's uploads into document aggregates and
// extends the received-type set so the same request's evaluation sees them.
func (s *SimpleStepService) buildUploads(edit StepEdit, docs fieldschema.DocumentSet, now time.Time) ([]uploadedDocument, fieldschema.DocumentSet, error) {
	documents := make([]uploadedDocument, 0, len(edit.Uploads))
	for _, upload := range edit.Uploads {
		doc, err := domain.NewDocumentBuilder().
			WithShipmentID(edit.ShipmentID).
			WithStepID(edit.StepID).
			WithDocumentType(upload.DocumentType).
			WithFileName(upload.FileName).
			WithSize(int64(len(upload.Content))).
			Build()
		if err != nil {
			return nil, docs, fmt.Errorf("building document: %w", err)
		}
		doc.CreatedAt = utils.Time{Time: now}

		documents = append(documents, uploadedDocument{doc: doc, content: upload.Content})
		docs = docs.With(upload.DocumentType)
	}

	return documents, docs, nil
}

type uploadedDocument struct {
	doc     domain.Document
	content []byte
}

func (s *SimpleStepService) persist(
	ctx context.Context,
	step domain.Step,
	changedSiblings []domain.Step,
	shipment domain.Shipment,
	globals map[string]string,
	globalsChanged bool,
	documents []uploadedDocument,
	now time.Time,
) error {
	for _, upload := range documents {
		if err := s.documentService.RegisterDocument(ctx, upload.doc, upload.content); err != nil {
			return fmt.Errorf("registering document: %w", err)
		}
	}

	if err := s.stepRepository.UpdateStep(ctx, step); err != nil {
		return fmt.Errorf("updating step: %w", err)
	}

	for _, sibling := range changedSiblings {
		sibling.Version++
		sibling.UpdatedAt = utils.Time{Time: now}
		if err := s.stepRepository.UpdateStep(ctx, sibling); err != nil {
			return fmt.Errorf("updating sibling step: %w", err)
		}
	}

	if globalsChanged {
		shipment.GlobalValues = globals
		shipment.Version++
		shipment.UpdatedAt = utils.Time{Time: now}
		if err := s.shipmentRepository.UpdateShipment(ctx, shipment); err != nil {
			return fmt.Errorf("updating shipment globals: %w", err)
		}
	}

	return nil
}

func siblingTrees(steps []domain.Step) map[string]map[string]any {
	trees := make(map[string]map[string]any, len(steps))
	for _, step := range steps {
		trees[string(step.ID)] = step.Values.Values
	}
	return trees
}

// recomputeSiblingFreezes re-evaluates every other step's freeze map against
// the fresh trees and returns only the ones that changed.
func recomputeSiblingFreezes(siblings []domain.Step, editedID domain.ID, lookup fieldschema.TreeLookup, now time.Time) []domain.Step {
	var changed []domain.Step
	for _, sibling := range siblings {
		if sibling.ID == editedID {
			continue
		}

		schema := sibling.EffectiveSchema()
		freeze, dirty := fieldschema.RecomputeFreeze(schema, sibling.Values.Values, sibling.Values.Freeze, lookup, now)
		if !dirty {
			continue
		}

		sibling.Values.Freeze = freeze
		changed = append(changed, sibling)
	}

	return changed
}

func missingDocumentTypes(required []string, docs fieldschema.DocumentSet) []string {
	var missing []string
	for _, documentType := range required {
		if !docs.Has(documentType) {
			missing = append(missing, documentType)
		}
	}
	return missing
}

func unmetDependencies(step domain.Step, siblings []domain.Step) []domain.ID {
	statusByID := make(map[domain.ID]domain.StepStatus, len(siblings))
	for _, sibling := range siblings {
		statusByID[sibling.ID] = sibling.Status
	}

	var unmet []domain.ID
	for _, dependency := range step.DependsOn {
		if statusByID[dependency] != domain.StepStatusDone {
			unmet = append(unmet, dependency)
		}
	}
	return unmet
}
