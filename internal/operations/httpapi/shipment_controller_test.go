package httpapi_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"shipops-server/internal/infra/httpserver"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/httpapi"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ShipmentController", func() {
	var controller *httpapi.ShipmentController
	var service *fakeShipmentService
	var router *http.ServeMux
	var recorder *httptest.ResponseRecorder

	BeforeEach(func() {
		service = newFakeShipmentService()
		controller = httpapi.NewShipmentController(service)
		router = http.NewServeMux()
		controller.AddRoutes(router)
		recorder = httptest.NewRecorder()
	})

	Context("createShipment", func() {
		When("the request is valid", func() {
			It("creates the shipment and replies 201", func() {
				body := `{"reference":"SHP-001","template_id":"template-1"}`
				request := httptest.NewRequest("POST", "/v1/shipments", strings.NewReader(body))

				router.ServeHTTP(recorder, request)

				Expect(recorder.Code).To(Equal(http.StatusCreated))
				Expect(service.shipments).To(HaveLen(1))
				for _, shipment := range service.shipments {
					Expect(shipment.Reference).To(Equal("SHP-001"))
					Expect(shipment.TemplateID).To(Equal(domain.ID("template-1")))
				}
			})
		})

		When("the reference is missing", func() {
			It("replies 400", func() {
				request := httptest.NewRequest("POST", "/v1/shipments", strings.NewReader(`{}`))

				router.ServeHTTP(recorder, request)

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			})
		})

		When("the service fails", func() {
			It("replies 500", func() {
				service.createErr = errors.New("boom")
				body := `{"reference":"SHP-001"}`
				request := httptest.NewRequest("POST", "/v1/shipments", strings.NewReader(body))

				router.ServeHTTP(recorder, request)

				Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			})
		})
	})

	Context("getShipment", func() {
		When("the shipment exists", func() {
			It("replies with its representation", func() {
				service.shipments["shipment-1"] = domain.Shipment{
					ID:           "shipment-1",
					Reference:    "SHP-001",
					GlobalValues: map[string]string{"discharge_date": "2026-09-01"},
				}
				request := httptest.NewRequest("GET", "/v1/shipments/shipment-1", nil)

				router.ServeHTTP(recorder, request)

				Expect(recorder.Code).To(Equal(http.StatusOK))
				var response map[string]any
				Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
				Expect(response["reference"]).To(Equal("SHP-001"))
			})
		})

		When("the shipment does not exist", func() {
			It("replies 404", func() {
				request := httptest.NewRequest("GET", "/v1/shipments/missing", nil)

				router.ServeHTTP(recorder, request)

				Expect(recorder.Code).To(Equal(http.StatusNotFound))
			})
		})
	})

	Context("listShipments", func() {
		It("replies with paginated data", func() {
			service.shipments["shipment-1"] = domain.Shipment{ID: "shipment-1", Reference: "SHP-001"}
			service.shipments["shipment-2"] = domain.Shipment{ID: "shipment-2", Reference: "SHP-002"}
			request := httptest.NewRequest("GET", "/v1/shipments?page=1&limit=10", nil)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var response httpserver.PaginatedResponse
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			Expect(response.Pagination.Total).To(Equal(2))
			Expect(response.Pagination.Page).To(Equal(1))
		})
	})
})
