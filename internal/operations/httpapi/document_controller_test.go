package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/fieldschema"
	"shipops-server/internal/operations/httpapi"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DocumentController", func() {
	var controller *httpapi.DocumentController
	var service *fakeDocumentService
	var router *http.ServeMux
	var recorder *httptest.ResponseRecorder

	BeforeEach(func() {
		service = &fakeDocumentService{}
		controller = httpapi.NewDocumentController(service)
		router = http.NewServeMux()
		controller.AddRoutes(router)
		recorder = httptest.NewRecorder()
	})

	Context("listDocuments", func() {
		It("replies with the shipment's documents only", func() {
			service.documents = []domain.Document{
				{ID: "doc-1", ShipmentID: "shipment-1", DocumentType: "step-1:bl", FileName: "bl.pdf"},
				{ID: "doc-2", ShipmentID: "shipment-2", DocumentType: "step-9:inv", FileName: "inv.pdf"},
			}
			request := httptest.NewRequest("GET", "/v1/shipments/shipment-1/documents", nil)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var response []map[string]any
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			Expect(response).To(HaveLen(1))
			Expect(response[0]["file_name"]).To(Equal("bl.pdf"))
		})
	})

	Context("listDocumentTypes", func() {
		It("replies with the received types sorted", func() {
			service.types = fieldschema.NewDocumentSet("step-2:packing_list", "step-1:bl")
			request := httptest.NewRequest("GET", "/v1/shipments/shipment-1/document-types", nil)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var response []string
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			Expect(response).To(Equal([]string{"step-1:bl", "step-2:packing_list"}))
		})
	})
})
