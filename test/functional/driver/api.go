package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type APIDriver struct {
	baseURL string
	client  *http.Client
}

func NewAPIDriver(baseURL string) *APIDriver {
	return &APIDriver{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (d *APIDriver) CreateShipment(reference string) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{
		"reference": reference,
	})
	if err != nil {
		panic(err)
	}
	return d.client.Post(fmt.Sprintf("%s/v1/shipments", d.baseURL), "application/json", bytes.NewBuffer(reqBody))
}

func (d *APIDriver) GetShipment(id string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/shipments/%s", d.baseURL, id))
}

func (d *APIDriver) ListShipments(page, limit int) (*http.Response, error) {
	url := fmt.Sprintf("%s/v1/shipments", d.baseURL)
	if page > 0 || limit > 0 {
		url += fmt.Sprintf("?page=%d&limit=%d", page, limit)
	}
	return d.client.Get(url)
}

func (d *APIDriver) CreateStep(shipmentID, name string) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{
		"name": name,
		"schema": []map[string]any{
			{"id": "eta", "label": "ETA", "type": "date", "required": true},
			{"id": "notes", "label": "Notes", "type": "text"},
		},
	})
	if err != nil {
		panic(err)
	}
	return d.client.Post(fmt.Sprintf("%s/v1/shipments/%s/steps", d.baseURL, shipmentID), "application/json", bytes.NewBuffer(reqBody))
}

func (d *APIDriver) CreateStepWithJSON(shipmentID, requestBody string) (*http.Response, error) {
	return d.client.Post(fmt.Sprintf("%s/v1/shipments/%s/steps", d.baseURL, shipmentID), "application/json", strings.NewReader(requestBody))
}

func (d *APIDriver) ListSteps(shipmentID string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/shipments/%s/steps", d.baseURL, shipmentID))
}

func (d *APIDriver) GetStep(shipmentID, stepID string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/shipments/%s/steps/%s", d.baseURL, shipmentID, stepID))
}

func (d *APIDriver) ApplyFieldUpdate(shipmentID, stepID, path string, value any) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{
		"updates": []map[string]any{
			{"path": path, "value": value},
		},
	})
	if err != nil {
		panic(err)
	}
	return d.client.Post(fmt.Sprintf("%s/v1/shipments/%s/steps/%s/edits", d.baseURL, shipmentID, stepID), "application/json", bytes.NewBuffer(reqBody))
}

func (d *APIDriver) RequestStepCompletion(shipmentID, stepID string) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{
		"requested_status": "done",
	})
	if err != nil {
		panic(err)
	}
	return d.client.Post(fmt.Sprintf("%s/v1/shipments/%s/steps/%s/edits", d.baseURL, shipmentID, stepID), "application/json", bytes.NewBuffer(reqBody))
}

func (d *APIDriver) ApplyEditWithJSON(shipmentID, stepID, requestBody string) (*http.Response, error) {
	return d.client.Post(fmt.Sprintf("%s/v1/shipments/%s/steps/%s/edits", d.baseURL, shipmentID, stepID), "application/json", strings.NewReader(requestBody))
}

func (d *APIDriver) ListDocuments(shipmentID string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/shipments/%s/documents", d.baseURL, shipmentID))
}

func (d *APIDriver) ListDocumentTypes(shipmentID string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/shipments/%s/document-types", d.baseURL, shipmentID))
}

func (d *APIDriver) ListGoods(shipmentID string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/shipments/%s/goods", d.baseURL, shipmentID))
}

func (d *APIDriver) GetHealthz() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/healthz", d.baseURL))
}
