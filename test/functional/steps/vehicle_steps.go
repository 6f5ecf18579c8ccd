package steps

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

func (fc *FeatureContext) fetchVehicle() (map[string]any, error) {
	resp, err := fc.apiDriver.GetVehicle()
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var data map[string]any
	if err := fc.decodeBody(resp.Body, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (fc *FeatureContext) vehicleFieldEventually(field, expected string, timeout time.Duration) error {
	return eventually(timeout, func() error {
		data, err := fc.fetchVehicle()
		if err != nil {
			return err
		}
		if fmt.Sprint(data[field]) != expected {
			return fmt.Errorf("vehicle %s is %v, expected %s", field, data[field], expected)
		}
		fc.responseData = data
		return nil
	})
}

func (fc *FeatureContext) theBridgeIsConnectedToTheSimulatedVehicle() error {
	data, err := fc.fetchVehicle()
	fc.require.NoError(err)
	if data["connection"] == "DISABLED" {
		resp, err := fc.apiDriver.Enable()
		fc.require.NoError(err)
		resp.Body.Close()
		resp, err = fc.apiDriver.Connect()
		fc.require.NoError(err)
		resp.Body.Close()
	}

	fc.require.NoError(fc.vehicleFieldEventually("connection", "CONNECTED", defaultTimeout))
	fc.require.NoError(fc.vehicleFieldEventually("state", "IDLE", defaultTimeout))
	return nil
}

func (fc *FeatureContext) iGetTheVehicle() error {
	resp, err := fc.apiDriver.GetVehicle()
	fc.require.NoError(err)
	fc.response = resp
	if resp.StatusCode == http.StatusOK {
		var data map[string]any
		fc.require.NoError(fc.decodeBody(resp.Body, &data))
		fc.responseData = data
	}
	return nil
}

func (fc *FeatureContext) iDisableTheVehicle() error {
	resp, err := fc.apiDriver.Disable()
	fc.require.NoError(err)
	fc.response = resp
	return nil
}

func (fc *FeatureContext) theSimulatedVehicleDropsTheConnection() error {
	fc.bridge.Simulator.DropConnections()
	return nil
}

func (fc *FeatureContext) theVehicleConnectionShouldBe(connection string) error {
	fc.require.Equal(connection, fc.responseData["connection"])
	return nil
}

func (fc *FeatureContext) theVehicleStateShouldBe(state string) error {
	fc.require.Equal(state, fc.responseData["state"])
	return nil
}

func (fc *FeatureContext) theVehicleConnectionShouldEventuallyBe(connection string) error {
	return fc.vehicleFieldEventually("connection", connection, defaultTimeout)
}

func (fc *FeatureContext) theVehicleStateShouldEventuallyBe(state string) error {
	return fc.vehicleFieldEventually("state", state, defaultTimeout)
}

func (fc *FeatureContext) theVehicleLoadStateShouldEventuallyBe(load string) error {
	return fc.vehicleFieldEventually("load_state", load, defaultTimeout)
}

func (fc *FeatureContext) theVehicleShouldReachPositionWithin(position, timeout string) error {
	d, err := time.ParseDuration(strings.TrimSpace(timeout))
	if err != nil {
		return err
	}
	return fc.vehicleFieldEventually("position", position, d)
}
