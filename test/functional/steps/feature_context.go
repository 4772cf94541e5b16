package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"shipops-server/test/functional/driver"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/require"
)

// PaginatedResponse mirrors the list envelope the server replies with.
type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
	} `json:"pagination"`
}

type FeatureContext struct {
	apiDriver    *driver.APIDriver
	response     *http.Response
	responseData map[string]any
	shipmentID   string
	stepID       string
	require      *require.Assertions
	t            godog.TestingT
}

func NewFeatureContext() *FeatureContext {
	return &FeatureContext{
		apiDriver: driver.NewAPIDriver("http://localhost:3000"),
	}
}

func (fc *FeatureContext) RegisterSteps(ctx *godog.ScenarioContext) {
	// Generic steps
	ctx.Step(`^wait for (.*)$`, fc.waitForDuration)
	ctx.Then(`^the response status code should be (\d+)$`, fc.theResponseStatusCodeShouldBe)
	ctx.Then(`^the response should contain the shipment details$`, fc.theResponseShouldContainTheShipmentDetails)
	ctx.Then(`^the response should contain the step details$`, fc.theResponseShouldContainTheStepDetails)
	ctx.Then(`^the service should be healthy$`, fc.theServiceShouldBeHealthy)

	// Shipment steps
	ctx.When(`^I create a new shipment with reference "([^"]*)"$`, fc.iCreateANewShipmentWithReference)
	ctx.Given(`^a shipment exists with reference "([^"]*)"$`, fc.aShipmentExistsWithReference)
	ctx.When(`^I get the shipment by its ID$`, fc.iGetTheShipmentByItsID)
	ctx.Then(`^the response should contain the shipment with reference "([^"]*)"$`, fc.theResponseShouldContainTheShipmentWithReference)
	ctx.When(`^I list all shipments$`, fc.iListAllShipments)
	ctx.Then(`^the list should contain the shipment with reference "([^"]*)"$`, fc.theListShouldContainTheShipmentWithReference)

	// Step steps
	ctx.When(`^I create a step named "([^"]*)" for the shipment$`, fc.iCreateAStepNamedForTheShipment)
	ctx.Given(`^a step named "([^"]*)" exists for the shipment$`, fc.aStepNamedExistsForTheShipment)
	ctx.When(`^I list all steps for the shipment$`, fc.iListAllStepsForTheShipment)
	ctx.Then(`^the list should contain the step named "([^"]*)"$`, fc.theListShouldContainTheStepNamed)
	ctx.When(`^I get the step by its ID$`, fc.iGetTheStepByItsID)
	ctx.When(`^I set the field "([^"]*)" to "([^"]*)"$`, fc.iSetTheFieldTo)
	ctx.Then(`^the step field "([^"]*)" should be "([^"]*)"$`, fc.theStepFieldShouldBe)
	ctx.Then(`^the step status should be "([^"]*)"$`, fc.theStepStatusShouldBe)
	ctx.When(`^I request completion of the step$`, fc.iRequestCompletionOfTheStep)
	ctx.Then(`^the edit outcome should be "([^"]*)"$`, fc.theEditOutcomeShouldBe)
	ctx.Then(`^the missing field paths should include "([^"]*)"$`, fc.theMissingFieldPathsShouldInclude)
	ctx.When(`^I upload a document of type "([^"]*)" named "([^"]*)"$`, fc.iUploadADocumentOfTypeNamed)
	ctx.When(`^I list all documents for the shipment$`, fc.iListAllDocumentsForTheShipment)
	ctx.Then(`^the list should contain the document named "([^"]*)"$`, fc.theListShouldContainTheDocumentNamed)

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.t = godog.T(ctx)
		fc.require = require.New(fc.t)

		fc.reset()
		return ctx, nil
	})
}

func (fc *FeatureContext) reset() {
	fc.response = nil
	fc.responseData = nil
	fc.shipmentID = ""
	fc.stepID = ""
}

func (fc *FeatureContext) decodeBody(body io.ReadCloser, target any) error {
	return json.NewDecoder(body).Decode(target)
}

func (fc *FeatureContext) decodePaginatedResponse(response *http.Response) ([]map[string]any, error) {
	var paginatedResp PaginatedResponse[map[string]any]
	if err := fc.decodeBody(response.Body, &paginatedResp); err != nil {
		return nil, fmt.Errorf("failed to decode paginated response: %w", err)
	}
	return paginatedResp.Data, nil
}
