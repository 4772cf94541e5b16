package steps

import (
	"fmt"
	"net/http"
)

// Shipment step implementations
func (fc *FeatureContext) iCreateANewShipmentWithReference(reference string) error {
	resp, err := fc.apiDriver.CreateShipment(reference)
	fc.require.NoError(err)
	fc.response = resp
	return nil
}

func (fc *FeatureContext) aShipmentExistsWithReference(reference string) error {
	resp, err := fc.apiDriver.CreateShipment(reference)
	fc.require.NoError(err)
	fc.require.Equal(http.StatusCreated, resp.StatusCode)

	var data map[string]any
	err = fc.decodeBody(resp.Body, &data)
	fc.require.NoError(err)
	fc.shipmentID = data["id"].(string)
	return nil
}

func (fc *FeatureContext) iGetTheShipmentByItsID() error {
	resp, err := fc.apiDriver.GetShipment(fc.shipmentID)
	fc.require.NoError(err)
	fc.response = resp
	return err
}

func (fc *FeatureContext) theResponseShouldContainTheShipmentWithReference(reference string) error {
	var data map[string]any
	err := fc.decodeBody(fc.response.Body, &data)
	fc.require.NoError(err)
	fc.require.Equal(reference, data["reference"])
	return nil
}

func (fc *FeatureContext) iListAllShipments() error {
	resp, err := fc.apiDriver.ListShipments(0, 0)
	fc.require.NoError(err)
	fc.response = resp
	return err
}

func (fc *FeatureContext) theListShouldContainTheShipmentWithReference(reference string) error {
	shipments, err := fc.decodePaginatedResponse(fc.response)
	fc.require.NoError(err)

	found := false
	for _, shipment := range shipments {
		if shipment["reference"] == reference {
			found = true
			break
		}
	}
	fc.require.True(found, fmt.Sprintf("Shipment with reference %s not found in list", reference))
	return nil
}
