package steps

import (
	"encoding/base64"
	"fmt"
	"net/http"
)

// Step workflow implementations
func (fc *FeatureContext) iCreateAStepNamedForTheShipment(name string) error {
	resp, err := fc.apiDriver.CreateStep(fc.shipmentID, name)
	fc.require.NoError(err)
	fc.response = resp
	return nil
}

func (fc *FeatureContext) aStepNamedExistsForTheShipment(name string) error {
	resp, err := fc.apiDriver.CreateStep(fc.shipmentID, name)
	fc.require.NoError(err)
	fc.require.Equal(http.StatusCreated, resp.StatusCode)

	var data map[string]any
	err = fc.decodeBody(resp.Body, &data)
	fc.require.NoError(err)
	fc.stepID = data["id"].(string)
	return nil
}

func (fc *FeatureContext) iListAllStepsForTheShipment() error {
	resp, err := fc.apiDriver.ListSteps(fc.shipmentID)
	fc.require.NoError(err)
	fc.response = resp
	return err
}

func (fc *FeatureContext) theListShouldContainTheStepNamed(name string) error {
	var steps []map[string]any
	err := fc.decodeBody(fc.response.Body, &steps)
	fc.require.NoError(err)

	found := false
	for _, step := range steps {
		if step["name"] == name {
			found = true
			break
		}
	}
	fc.require.True(found, fmt.Sprintf("Step named %s not found in list", name))
	return nil
}

func (fc *FeatureContext) iGetTheStepByItsID() error {
	resp, err := fc.apiDriver.GetStep(fc.shipmentID, fc.stepID)
	fc.require.NoError(err)
	fc.response = resp
	return err
}

func (fc *FeatureContext) iSetTheFieldTo(path, value string) error {
	resp, err := fc.apiDriver.ApplyFieldUpdate(fc.shipmentID, fc.stepID, path, value)
	fc.require.NoError(err)
	fc.response = resp
	return err
}

func (fc *FeatureContext) theStepFieldShouldBe(path, value string) error {
	fc.require.NotNil(fc.responseData)
	step, ok := fc.responseData["step"].(map[string]any)
	if !ok {
		step = fc.responseData
	}
	values, ok := step["values"].(map[string]any)
	fc.require.True(ok, "response carries no field values")
	fc.require.Equal(value, values[path])
	return nil
}

func (fc *FeatureContext) theStepStatusShouldBe(status string) error {
	fc.require.NotNil(fc.responseData)
	step, ok := fc.responseData["step"].(map[string]any)
	if !ok {
		step = fc.responseData
	}
	fc.require.Equal(status, step["status"])
	return nil
}

func (fc *FeatureContext) iRequestCompletionOfTheStep() error {
	resp, err := fc.apiDriver.RequestStepCompletion(fc.shipmentID, fc.stepID)
	fc.require.NoError(err)
	fc.response = resp
	return err
}

func (fc *FeatureContext) theEditOutcomeShouldBe(outcome string) error {
	var data map[string]any
	err := fc.decodeBody(fc.response.Body, &data)
	fc.require.NoError(err)
	fc.require.Equal(outcome, data["outcome"])
	fc.responseData = data
	return nil
}

func (fc *FeatureContext) theMissingFieldPathsShouldInclude(path string) error {
	fc.require.NotNil(fc.responseData)
	raw, ok := fc.responseData["missing_field_paths"].([]any)
	fc.require.True(ok, "response carries no missing field paths")

	found := false
	for _, entry := range raw {
		if entry == path {
			found = true
			break
		}
	}
	fc.require.True(found, fmt.Sprintf("Missing field path %s not reported", path))
	return nil
}

func (fc *FeatureContext) iUploadADocumentOfTypeNamed(documentType, fileName string) error {
	content := base64.StdEncoding.EncodeToString([]byte("functional test document"))
	body := fmt.Sprintf(`{"uploads":[{"document_type":%q,"file_name":%q,"content":%q}]}`, documentType, fileName, content)
	resp, err := fc.apiDriver.ApplyEditWithJSON(fc.shipmentID, fc.stepID, body)
	fc.require.NoError(err)
	fc.response = resp
	return err
}

func (fc *FeatureContext) iListAllDocumentsForTheShipment() error {
	resp, err := fc.apiDriver.ListDocuments(fc.shipmentID)
	fc.require.NoError(err)
	fc.response = resp
	return err
}

func (fc *FeatureContext) theListShouldContainTheDocumentNamed(fileName string) error {
	var documents []map[string]any
	err := fc.decodeBody(fc.response.Body, &documents)
	fc.require.NoError(err)

	found := false
	for _, document := range documents {
		if document["file_name"] == fileName {
			found = true
			break
		}
	}
	fc.require.True(found, fmt.Sprintf("Document named %s not found in list", fileName))
	return nil
}
