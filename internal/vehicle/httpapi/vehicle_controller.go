package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"vehicle-bridge/internal/infra/httpserver"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/httpapi/internal"
	"vehicle-bridge/internal/vehicle/usecases"
)

const (
	sendCommandErrMessage     = "failed to send command"
	invalidBodyErrMessage     = "invalid request body"
	readCachedStateErrMessage = "failed to read vehicle state"
)

func NewVehicleController(vehicle string, service usecases.VehicleService, stateCache usecases.VehicleStateCache) *VehicleController {
	return &VehicleController{
		vehicle:    vehicle,
		service:    service,
		stateCache: stateCache,
	}
}

var _ httpserver.Controller = &VehicleController{}

type VehicleController struct {
	vehicle    string
	service    usecases.VehicleService
	stateCache usecases.VehicleStateCache
}

func (c *VehicleController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /vehicle", c.getVehicle())
	router.Handle("GET /vehicle/state", c.getCachedState())
	router.Handle("POST /vehicle/enable", c.lifecycle(c.service.Enable))
	router.Handle("POST /vehicle/disable", c.lifecycle(c.service.Disable))
	router.Handle("POST /vehicle/connect", c.lifecycle(c.service.Connect))
	router.Handle("POST /vehicle/disconnect", c.lifecycle(c.service.Disconnect))
	router.Handle("PUT /vehicle/settings", c.updateSettings())
	router.Handle("POST /vehicle/commands", c.sendCommand())
	router.Handle("DELETE /vehicle/commands", c.clearQueue())
	router.Handle("GET /vehicle/commands/pending", c.pendingCommands())
	router.Handle("POST /vehicle/requests", c.sendRequest())
	router.Handle("POST /vehicle/capability", c.canExecute())
}

func (c *VehicleController) vehicleResponse() internal.VehicleResponse {
	return internal.ToVehicleResponse(c.service.Snapshot(), c.service.ConnectionState())
}

func (c *VehicleController) getVehicle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpserver.ReplyJSONResponse(w, http.StatusOK, c.vehicleResponse())
	}
}

// getCachedState answers from the state cache so that readers do not contend for the engine.
func (c *VehicleController) getCachedState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := c.stateCache.LoadSnapshot(r.Context(), c.vehicle, c.service.Snapshot)
		if err != nil {
			slog.Error("loading cached vehicle state", slog.String("vehicle", c.vehicle), slog.Any("error", err))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, readCachedStateErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, snapshot)
	}
}

// lifecycle runs one of the asynchronous lifecycle operations. The outcome shows up in the
// vehicle state later.
func (c *VehicleController) lifecycle(operation func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		operation()
		httpserver.ReplyJSONResponse(w, http.StatusAccepted, c.vehicleResponse())
	}
}

func (c *VehicleController) updateSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.SettingsRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidBodyErrMessage)
			return
		}
		if err := body.Validate(); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		c.service.UpdateSettings(body.ToUpdate())
		httpserver.ReplyJSONResponse(w, http.StatusOK, c.vehicleResponse())
	}
}

func (c *VehicleController) sendCommand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.CommandRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidBodyErrMessage)
			return
		}

		builder := domain.NewMovementCommandBuilder().
			WithDestinationPoint(body.DestinationPoint).
			WithFinalMovement(body.FinalMovement).
			WithProperties(body.Properties)
		if body.Operation != "" {
			builder = builder.WithOperation(body.Operation)
		}
		cmd, err := builder.Build()
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := c.service.SendCommand(r.Context(), cmd); err != nil {
			if errors.Is(err, domain.ErrInvalidCommand) {
				httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			httpserver.ReplyWithError(w, http.StatusInternalServerError, sendCommandErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusAccepted, internal.CommandResponse{ID: cmd.ID.String()})
	}
}

func (c *VehicleController) clearQueue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.service.ClearQueue()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *VehicleController) pendingCommands() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToPendingCommandResponses(c.service.PendingCommands()))
	}
}

func (c *VehicleController) sendRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.TelegramRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidBodyErrMessage)
			return
		}

		req, err := body.ToRequest()
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		c.service.SendRequest(req)
		w.WriteHeader(http.StatusAccepted)
	}
}

func (c *VehicleController) canExecute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.CapabilityRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidBodyErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, c.service.CanExecute(body.Operations))
	}
}
