package usecases

import (
	"context"
	"vehicle-bridge/internal/vehicle/domain"
)

//go:generate mockgen -source=command_journal.go -destination=../../../test/unit/doubles/vehicle/usecases/command_journal_mock.go -package=usecases -mock_names=CommandJournal=MockCommandJournal

// CommandJournal reads the history of the commands reported on the results topic.
type CommandJournal interface {
	// Recent returns the latest records of vehicle, newest first.
	Recent(ctx context.Context, vehicle string, limit int) ([]domain.CommandRecord, error)
	Get(ctx context.Context, id domain.ID) (domain.CommandRecord, error)
}
