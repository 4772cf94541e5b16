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
	createShipmentErrMessage    = "failed to create shipment"
	duplicateShipmentErrMessage = "shipment reference already exists"
)

func NewShipmentController(service usecases.ShipmentService) *ShipmentController {
	return &ShipmentController{
		service,
	}
}

var _ httpserver.Controller = &ShipmentController{}

type ShipmentController struct {
	service usecases.ShipmentService
}

func (c *ShipmentController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/shipments", c.listShipments())
	router.Handle("POST /v1/shipments", c.createShipment())
	router.Handle("GET /v1/shipments/{id}", c.getShipment())
}

func (c *ShipmentController) listShipments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httpserver.ExtractPaginationParams(r)

		shipments, total, err := c.service.AllShipments(r.Context(), params)
		if err != nil {
			slog.Error("list shipments failed", slog.String("error", err.Error()))
			http.Error(w, "failed to list shipments", http.StatusInternalServerError)
			return
		}

		responses := make([]internal.ShipmentResponse, len(shipments))
		for i, shipment := range shipments {
			responses[i] = internal.FromShipment(shipment)
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, responses, total, params)
	}
}

func (c *ShipmentController) createShipment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.ShipmentCreateRequest
		err := httpserver.DecodeJSONBody(r, &body)
		if err != nil {
			http.Error(w, createShipmentErrMessage, http.StatusBadRequest)
			return
		}

		shipment, err := domain.NewShipmentBuilder().
			WithReference(body.Reference).
			WithTemplate(domain.WorkflowTemplate{ID: domain.ID(body.TemplateID)}).
			Build()
		if err != nil {
			http.Error(w, createShipmentErrMessage, http.StatusBadRequest)
			return
		}

		err = c.service.CreateShipment(r.Context(), shipment)
		if errors.Is(err, usecases.ErrShipmentDuplicated) {
			http.Error(w, duplicateShipmentErrMessage, http.StatusConflict)
			return
		}
		if errors.Is(err, usecases.ErrTemplateNotFound) {
			http.Error(w, "workflow template not found", http.StatusBadRequest)
			return
		}
		if err != nil {
			slog.Error("create shipment failed", slog.String("error", err.Error()))
			http.Error(w, createShipmentErrMessage, http.StatusInternalServerError)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.FromShipment(shipment))
	}
}

func (c *ShipmentController) getShipment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httpserver.GetPathParam(r, "id")

		shipment, err := c.service.GetShipment(r.Context(), domain.ID(id))
		if errors.Is(err, usecases.ErrShipmentNotFound) {
			http.Error(w, "shipment not found", http.StatusNotFound)
			return
		}
		if err != nil {
			slog.Error("get shipment failed", slog.String("error", err.Error()))
			http.Error(w, "failed to get shipment", http.StatusInternalServerError)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromShipment(shipment))
	}
}
