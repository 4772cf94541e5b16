package httpapi

import (
	"log/slog"
	"net/http"

	"shipops-server/internal/infra/httpserver"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/httpapi/internal"
	"shipops-server/internal/operations/usecases"
)

func NewGoodsController(service usecases.GoodsService) *GoodsController {
	return &GoodsController{
		service,
	}
}

var _ httpserver.Controller = &GoodsController{}

type GoodsController struct {
	service usecases.GoodsService
}

func (c *GoodsController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/shipments/{id}/goods", c.listGoods())
}

func (c *GoodsController) listGoods() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httpserver.GetPathParam(r, "id")

		goods, err := c.service.GoodsByShipment(r.Context(), domain.ID(id))
		if err != nil {
			slog.Error("list goods failed", slog.String("error", err.Error()))
			http.Error(w, "failed to list goods", http.StatusInternalServerError)
			return
		}

		responses := make([]internal.GoodResponse, len(goods))
		for i, good := range goods {
			responses[i] = internal.FromShipmentGood(good)
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, responses)
	}
}
