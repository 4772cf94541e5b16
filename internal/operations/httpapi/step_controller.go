package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"shipops-server/internal/infra/httpserver"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/httpapi/internal"
	"shipops-server/internal/operations/usecases"
)

const (
	createStepErrMessage = "failed to create step"
	editStepErrMessage   = "failed to apply step edit"
)

func NewStepController(
	service usecases.StepService,
	shipmentService usecases.ShipmentService,
) *StepController {
	return &StepController{
		service:         service,
		shipmentService: shipmentService,
	}
}

var _ httpserver.Controller = &StepController{}

type StepController struct {
	service         usecases.StepService
	shipmentService usecases.ShipmentService
}

func (c *StepController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/shipments/{id}/steps", c.listSteps())
	router.Handle("POST /v1/shipments/{id}/steps", c.createStep())
	router.Handle("GET /v1/shipments/{id}/steps/{step_id}", c.getStep())
	router.Handle("POST /v1/shipments/{id}/steps/{step_id}/edits", c.applyEdit())
}

func (c *StepController) listSteps() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httpserver.GetPathParam(r, "id")

		steps, err := c.service.StepsByShipment(r.Context(), domain.ID(id))
		if err != nil {
			slog.Error("list steps failed", slog.String("error", err.Error()))
			http.Error(w, "failed to list steps", http.StatusInternalServerError)
			return
		}

		responses := make([]internal.StepResponse, len(steps))
		for i, step := range steps {
			responses[i] = internal.FromStep(step)
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, responses)
	}
}

func (c *StepController) createStep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httpserver.GetPathParam(r, "id")
		shipment, err := c.shipmentService.GetShipment(r.Context(), domain.ID(id))
		if errors.Is(err, usecases.ErrShipmentNotFound) {
			http.Error(w, "shipment not found", http.StatusNotFound)
			return
		}
		if err != nil {
			slog.Error("get shipment failed", slog.String("error", err.Error()))
			http.Error(w, createStepErrMessage, http.StatusInternalServerError)
			return
		}

		var body internal.StepCreateRequest
		err = httpserver.DecodeJSONBody(r, &body)
		if err != nil {
			slog.Error("decoding json body", slog.String("error", err.Error()))
			http.Error(w, createStepErrMessage, http.StatusBadRequest)
			return
		}

		dependsOn := make([]domain.ID, 0, len(body.DependsOn))
		for _, dep := range body.DependsOn {
			dependsOn = append(dependsOn, domain.ID(dep))
		}

		step, err := domain.NewStepBuilder().
			WithShipment(shipment).
			WithName(body.Name).
			WithSchema(body.Schema).
			WithRequiredDocumentTypes(body.RequiredDocumentTypes).
			WithChecklistGroups(body.ChecklistGroups).
			WithDependsOn(dependsOn).
			Build()
		if err != nil {
			http.Error(w, createStepErrMessage, http.StatusBadRequest)
			return
		}

		err = c.service.CreateStep(r.Context(), step)
		if err != nil {
			slog.Error("create step failed", slog.String("error", err.Error()))
			http.Error(w, createStepErrMessage, http.StatusInternalServerError)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.FromStep(step))
	}
}

func (c *StepController) getStep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stepID := httpserver.GetPathParam(r, "step_id")

		step, err := c.service.GetStep(r.Context(), domain.ID(stepID))
		if errors.Is(err, usecases.ErrStepNotFound) {
			http.Error(w, "step not found", http.StatusNotFound)
			return
		}
		if err != nil {
			slog.Error("get step failed", slog.String("error", err.Error()))
			http.Error(w, "failed to get step", http.StatusInternalServerError)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromStep(step))
	}
}

func (c *StepController) applyEdit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httpserver.GetPathParam(r, "id")
		stepID := httpserver.GetPathParam(r, "step_id")

		var body internal.StepEditRequest
		err := httpserver.DecodeJSONBody(r, &body)
		if err != nil {
			slog.Error("decoding json body", slog.String("error", err.Error()))
			http.Error(w, editStepErrMessage, http.StatusBadRequest)
			return
		}

		if body.RequestedStatus != "" && !domain.StepStatus(body.RequestedStatus).Valid() {
			http.Error(w, "invalid requested status", http.StatusBadRequest)
			return
		}

		edit, err := body.ToStepEdit(domain.ID(id), domain.ID(stepID))
		if err != nil {
			http.Error(w, editStepErrMessage, http.StatusBadRequest)
			return
		}

		result, err := c.service.ApplyEdit(r.Context(), edit)
		if errors.Is(err, usecases.ErrStepNotFound) {
			http.Error(w, "step not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, usecases.ErrShipmentNotFound) {
			http.Error(w, "shipment not found", http.StatusNotFound)
			return
		}
		if err != nil {
			slog.Error("apply step edit failed", slog.String("error", err.Error()))
			http.Error(w, editStepErrMessage, http.StatusInternalServerError)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromEditResult(result))
	}
}
