package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
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

func (d *APIDriver) GetVehicle() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/vehicle", d.baseURL))
}

func (d *APIDriver) GetCachedState() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/vehicle/state", d.baseURL))
}

func (d *APIDriver) Enable() (*http.Response, error) {
	return d.post("/vehicle/enable", nil)
}

func (d *APIDriver) Disable() (*http.Response, error) {
	return d.post("/vehicle/disable", nil)
}

func (d *APIDriver) Connect() (*http.Response, error) {
	return d.post("/vehicle/connect", nil)
}

func (d *APIDriver) SendCommand(destination, operation string) (*http.Response, error) {
	return d.post("/vehicle/commands", map[string]any{
		"destination_point": destination,
		"operation":         operation,
	})
}

func (d *APIDriver) PendingCommands() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/vehicle/commands/pending", d.baseURL))
}

func (d *APIDriver) CommandHistory(limit int) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/vehicle/commands/history?limit=%d", d.baseURL, limit))
}

func (d *APIDriver) GetCommand(id string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/vehicle/commands/%s", d.baseURL, id))
}

func (d *APIDriver) CanExecute(operations ...string) (*http.Response, error) {
	return d.post("/vehicle/capability", map[string]any{"operations": operations})
}

func (d *APIDriver) post(path string, body any) (*http.Response, error) {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reqBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(reqBody)
	}
	return d.client.Post(d.baseURL+path, "application/json", reader)
}
