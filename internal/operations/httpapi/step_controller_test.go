package httpapi_test

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/fieldschema"
	"shipops-server/internal/operations/httpapi"
	"shipops-server/internal/operations/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("StepController", func() {
	var controller *httpapi.StepController
	var stepService *fakeStepService
	var shipmentService *fakeShipmentService
	var router *http.ServeMux
	var recorder *httptest.ResponseRecorder

	BeforeEach(func() {
		stepService = newFakeStepService()
		shipmentService = newFakeShipmentService()
		controller = httpapi.NewStepController(stepService, shipmentService)
		router = http.NewServeMux()
		controller.AddRoutes(router)
		recorder = httptest.NewRecorder()
	})

	Context("createStep", func() {
		When("the shipment exists", func() {
			BeforeEach(func() {
				shipmentService.shipments["shipment-1"] = domain.Shipment{ID: "shipment-1", Reference: "SHP-001"}
			})

			It("creates the step and replies 201", func() {
				body := `{"name":"customs clearance","schema":[{"id":"eta","label":"ETA","type":"date","required":true}],"depends_on":["step-0"]}`
				request := httptest.NewRequest("POST", "/v1/shipments/shipment-1/steps", strings.NewReader(body))

				router.ServeHTTP(recorder, request)

				Expect(recorder.Code).To(Equal(http.StatusCreated))
				Expect(stepService.steps).To(HaveLen(1))
				for _, step := range stepService.steps {
					Expect(step.Name).To(Equal("customs clearance"))
					Expect(step.ShipmentID).To(Equal(domain.ID("shipment-1")))
					Expect(step.Schema).To(HaveLen(1))
					Expect(step.DependsOn).To(Equal([]domain.ID{"step-0"}))
				}
			})
		})

		When("the shipment does not exist", func() {
			It("replies 404", func() {
				body := `{"name":"customs clearance"}`
				request := httptest.NewRequest("POST", "/v1/shipments/missing/steps", strings.NewReader(body))

				router.ServeHTTP(recorder, request)

				Expect(recorder.Code).To(Equal(http.StatusNotFound))
			})
		})
	})

	Context("applyEdit", func() {
		When("the edit carries updates and an upload", func() {
			It("decodes the request into a step edit", func() {
				stepService.result = usecases.EditResult{
					Step:    domain.Step{ID: "step-1", ShipmentID: "shipment-1", Status: domain.StepStatusDone},
					Outcome: domain.StatusOutcomeApplied,
				}

				content := base64.StdEncoding.EncodeToString([]byte("pdf bytes"))
				body := fmt.Sprintf(`{
					"updates": [{"path": "eta", "value": "2026-09-01"}],
					"removals": ["customs.note"],
					"uploads": [{"document_type": "step-1:bl", "file_name": "bl.pdf", "content": %q}],
					"requested_status": "done"
				}`, content)
				request := httptest.NewRequest("POST", "/v1/shipments/shipment-1/steps/step-1/edits", strings.NewReader(body))

				router.ServeHTTP(recorder, request)

				Expect(recorder.Code).To(Equal(http.StatusOK))
				Expect(stepService.lastEdit.ShipmentID).To(Equal(domain.ID("shipment-1")))
				Expect(stepService.lastEdit.StepID).To(Equal(domain.ID("step-1")))
				Expect(stepService.lastEdit.Updates).To(HaveLen(1))
				Expect(stepService.lastEdit.Updates[0].Path).To(Equal(fieldschema.Path{"eta"}))
				Expect(stepService.lastEdit.Removals).To(Equal([]fieldschema.Path{{"customs", "note"}}))
				Expect(stepService.lastEdit.Uploads).To(HaveLen(1))
				Expect(stepService.lastEdit.Uploads[0].Content).To(Equal([]byte("pdf bytes")))
				Expect(stepService.lastEdit.RequestedStatus).To(Equal(domain.StepStatusDone))

				var response map[string]any
				Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
				Expect(response["outcome"]).To(Equal("applied"))
			})
		})

		When("the refused transition reports what is missing", func() {
			It("carries the missing requirements in the response", func() {
				stepService.result = usecases.EditResult{
					Step:                 domain.Step{ID: "step-1", ShipmentID: "shipment-1", Status: domain.StepStatusInProgress},
					Outcome:              domain.StatusOutcomeMissingRequirements,
					MissingFieldPaths:    []string{"eta"},
					MissingDocumentTypes: []string{"step-1:bl"},
				}

				body := `{"requested_status": "done"}`
				request := httptest.NewRequest("POST", "/v1/shipments/shipment-1/steps/step-1/edits", strings.NewReader(body))

				router.ServeHTTP(recorder, request)

				Expect(recorder.Code).To(Equal(http.StatusOK))
				var response map[string]any
				Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
				Expect(response["outcome"]).To(Equal("missing_requirements"))
				Expect(response["missing_field_paths"]).To(ConsistOf("eta"))
				Expect(response["missing_document_types"]).To(ConsistOf("step-1:bl"))
			})
		})

		When("the requested status is not a known one", func() {
			It("replies 400", func() {
				body := `{"requested_status": "finished"}`
				request := httptest.NewRequest("POST", "/v1/shipments/shipment-1/steps/step-1/edits", strings.NewReader(body))

				router.ServeHTTP(recorder, request)

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			})
		})

		When("the upload content is not valid base64", func() {
			It("replies 400", func() {
				body := `{"uploads": [{"document_type": "step-1:bl", "file_name": "bl.pdf", "content": "%%%"}]}`
				request := httptest.NewRequest("POST", "/v1/shipments/shipment-1/steps/step-1/edits", strings.NewReader(body))

				router.ServeHTTP(recorder, request)

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			})
		})

		When("the step does not exist", func() {
			It("replies 404", func() {
				stepService.editErr = usecases.ErrStepNotFound
				body := `{"updates": [{"path": "eta", "value": "x"}]}`
				request := httptest.NewRequest("POST", "/v1/shipments/shipment-1/steps/missing/edits", strings.NewReader(body))

				router.ServeHTTP(recorder, request)

				Expect(recorder.Code).To(Equal(http.StatusNotFound))
			})
		})
	})

	Context("getStep", func() {
		It("replies with the step representation", func() {
			stepService.steps["step-1"] = domain.Step{
				ID:         "step-1",
				ShipmentID: "shipment-1",
				Name:       "customs clearance",
				Status:     domain.StepStatusInProgress,
				Values:     fieldschema.Envelope{Values: map[string]any{"eta": "2026-09-01"}},
			}
			request := httptest.NewRequest("GET", "/v1/shipments/shipment-1/steps/step-1", nil)

			router.ServeHTTP(recorder, request)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var response map[string]any
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			Expect(response["status"]).To(Equal("in_progress"))
			values, ok := response["values"].(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(values["eta"]).To(Equal("2026-09-01"))
		})
	})
})
