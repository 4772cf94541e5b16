package steps

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Generic step implementations
func (fc *FeatureContext) waitForDuration(duration string) error {
	duration = strings.TrimSpace(duration)

	var d time.Duration

	if strings.HasSuffix(duration, "ms") {
		msStr := strings.TrimSuffix(duration, "ms")
		ms, err := strconv.Atoi(msStr)
		if err != nil {
			return err
		}
		d = time.Duration(ms) * time.Millisecond
	} else if strings.HasSuffix(duration, "s") {
		sStr := strings.TrimSuffix(duration, "s")
		s, err := strconv.Atoi(sStr)
		if err != nil {
			return err
		}
		d = time.Duration(s) * time.Second
	} else {
		ms, err := strconv.Atoi(duration)
		if err != nil {
			return err
		}
		d = time.Duration(ms) * time.Millisecond
	}

	time.Sleep(d)
	return nil
}

func (fc *FeatureContext) theResponseStatusCodeShouldBe(code int) error {
	fc.require.Equal(code, fc.response.StatusCode, "Unexpected status code")
	return nil
}

func (fc *FeatureContext) theResponseShouldContainTheShipmentDetails() error {
	var data map[string]any
	err := fc.decodeBody(fc.response.Body, &data)
	fc.require.NoError(err)
	fc.require.NotEmpty(data["id"])
	fc.shipmentID = data["id"].(string)
	fc.responseData = data
	return nil
}

func (fc *FeatureContext) theResponseShouldContainTheStepDetails() error {
	var data map[string]any
	err := fc.decodeBody(fc.response.Body, &data)
	fc.require.NoError(err)
	fc.require.NotEmpty(data["id"])
	fc.stepID = data["id"].(string)
	fc.responseData = data
	return nil
}

func (fc *FeatureContext) theServiceShouldBeHealthy() error {
	resp, err := fc.apiDriver.GetHealthz()
	fc.require.NoError(err)
	fc.require.Equal(http.StatusOK, resp.StatusCode)
	return nil
}
