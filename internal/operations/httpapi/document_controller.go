package httpapi

import (
	"log/slog"
	"net/http"

	"shipops-server/internal/infra/httpserver"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/httpapi/internal"
	"shipops-server/internal/operations/usecases"
)

func NewDocumentController(service usecases.DocumentService) *DocumentController {
	return &DocumentController{
		service,
	}
}

var _ httpserver.Controller = &DocumentController{}

type DocumentController struct {
	service usecases.DocumentService
}

func (c *DocumentController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/shipments/{id}/documents", c.listDocuments())
	router.Handle("GET /v1/shipments/{id}/document-types", c.listDocumentTypes())
}

func (c *DocumentController) listDocuments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httpserver.GetPathParam(r, "id")

		documents, err := c.service.DocumentsByShipment(r.Context(), domain.ID(id))
		if err != nil {
			slog.Error("list documents failed", slog.String("error", err.Error()))
			http.Error(w, "failed to list documents", http.StatusInternalServerError)
			return
		}

		responses := make([]internal.DocumentResponse, len(documents))
		for i, doc := range documents {
			responses[i] = internal.FromDocument(doc)
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, responses)
	}
}

func (c *DocumentController) listDocumentTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httpserver.GetPathParam(r, "id")

		types, err := c.service.ReceivedDocumentTypes(r.Context(), domain.ID(id))
		if err != nil {
			slog.Error("list document types failed", slog.String("error", err.Error()))
			http.Error(w, "failed to list document types", http.StatusInternalServerError)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, types.Values())
	}
}
