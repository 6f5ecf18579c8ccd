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
	defaultHistoryLimit       = 50
	readJournalErrMessage     = "failed to read command journal"
	commandNotFoundErrMessage = "command not found"
)

func NewCommandJournalController(vehicle string, journal usecases.CommandJournal) *CommandJournalController {
	return &CommandJournalController{
		vehicle: vehicle,
		journal: journal,
	}
}

var _ httpserver.Controller = &CommandJournalController{}

// CommandJournalController serves the replicated history of the dispatcher's commands.
type CommandJournalController struct {
	vehicle string
	journal usecases.CommandJournal
}

func (c *CommandJournalController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /vehicle/commands/history", c.history())
	router.Handle("GET /vehicle/commands/{id}", c.getCommand())
}

func (c *CommandJournalController) history() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := httpserver.GetQueryParamInt(r, "limit", defaultHistoryLimit)
		records, err := c.journal.Recent(r.Context(), c.vehicle, limit)
		if err != nil {
			slog.Error("reading command journal", slog.String("vehicle", c.vehicle), slog.Any("error", err))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, readJournalErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToCommandHistoryResponse(records))
	}
}

func (c *CommandJournalController) getCommand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httpserver.GetPathParam(r, "id")
		record, err := c.journal.Get(r.Context(), domain.ID(id))
		if errors.Is(err, domain.ErrCommandNotFound) {
			httpserver.ReplyWithError(w, http.StatusNotFound, commandNotFoundErrMessage)
			return
		}
		if err != nil {
			slog.Error("reading command record", slog.String("command_id", id), slog.Any("error", err))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, readJournalErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToCommandRecordResponse(record))
	}
}
