package steps

import (
	"fmt"
)

func (fc *FeatureContext) iSendACommandToWithOperation(destination, operation string) error {
	resp, err := fc.apiDriver.SendCommand(destination, operation)
	fc.require.NoError(err)
	fc.response = resp
	return nil
}

func (fc *FeatureContext) theResponseShouldContainACommandID() error {
	var data map[string]any
	fc.require.NoError(fc.decodeBody(fc.response.Body, &data))
	fc.require.NotEmpty(data["id"])
	return nil
}

func (fc *FeatureContext) thereShouldBeNoPendingCommands() error {
	return eventually(defaultTimeout, func() error {
		resp, err := fc.apiDriver.PendingCommands()
		if err != nil {
			return err
		}
		var pending []map[string]any
		if err := fc.decodeBody(resp.Body, &pending); err != nil {
			return err
		}
		if len(pending) != 0 {
			return fmt.Errorf("%d commands still pending", len(pending))
		}
		return nil
	})
}

func (fc *FeatureContext) iAskWhetherTheVehicleCanExecute(operation string) error {
	resp, err := fc.apiDriver.CanExecute(operation)
	fc.require.NoError(err)
	fc.response = resp

	var data map[string]any
	fc.require.NoError(fc.decodeBody(resp.Body, &data))
	fc.responseData = data
	return nil
}

func (fc *FeatureContext) theCapabilityAnswerShouldBeAccepted() error {
	fc.require.Equal(true, fc.responseData["executable"])
	return nil
}

func (fc *FeatureContext) theCapabilityAnswerShouldBeRejected() error {
	fc.require.Equal(false, fc.responseData["executable"])
	fc.require.NotEmpty(fc.responseData["reason"])
	return nil
}
