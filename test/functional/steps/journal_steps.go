package steps

import (
	"context"
	"fmt"
	"net/http"
	"vehicle-bridge/internal/vehicle/dto"
)

func (fc *FeatureContext) theDispatcherPublishesCommand(id, destination, operation string) error {
	return fc.bridge.PublishCommand(context.Background(), dto.Command{
		ID:               id,
		Vehicle:          fc.bridge.App.Config.Vehicle.Name,
		DestinationPoint: destination,
		Operation:        operation,
		FinalMovement:    true,
	})
}

func (fc *FeatureContext) theJournalShouldEventuallyShowCommandAs(id, status string) error {
	return eventually(defaultTimeout, func() error {
		resp, err := fc.apiDriver.GetCommand(id)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("command %s answered %d", id, resp.StatusCode)
		}
		var record map[string]any
		if err := fc.decodeBody(resp.Body, &record); err != nil {
			return err
		}
		if record["status"] != status {
			return fmt.Errorf("command %s is %v, want %s", id, record["status"], status)
		}
		return nil
	})
}

func (fc *FeatureContext) theCommandHistoryShouldList(id string) error {
	resp, err := fc.apiDriver.CommandHistory(10)
	fc.require.NoError(err)
	fc.require.Equal(http.StatusOK, resp.StatusCode)

	var history struct {
		Data []map[string]any `json:"data"`
	}
	fc.require.NoError(fc.decodeBody(resp.Body, &history))
	for _, record := range history.Data {
		if record["id"] == id {
			return nil
		}
	}
	return fmt.Errorf("command %s missing from history %v", id, history.Data)
}

func (fc *FeatureContext) iGetTheCommand(id string) error {
	resp, err := fc.apiDriver.GetCommand(id)
	fc.require.NoError(err)
	fc.response = resp
	return nil
}
