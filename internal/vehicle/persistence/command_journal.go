package persistence

import (
	"context"
	"errors"
	"fmt"
	"vehicle-bridge/internal/infra/pubsub"
	"vehicle-bridge/internal/infra/replication"
	"vehicle-bridge/internal/infra/sql"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/dto"
	"vehicle-bridge/internal/vehicle/persistence/internal"
	"vehicle-bridge/internal/vehicle/usecases"
)

const (
	DefaultJournalLimit = 50
	MaxJournalLimit     = 500
)

func NewCommandJournal(orm sql.ORM) (*CommandJournal, error) {
	err := orm.AutoMigrate(&internal.CommandRecord{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating command journal: %w", err)
	}

	return &CommandJournal{orm: orm}, nil
}

var (
	_ usecases.CommandJournal  = (*CommandJournal)(nil)
	_ replication.TopicHandler = (*CommandJournal)(nil)
)

// CommandJournal replicates the command results topic into a table with one row per command.
type CommandJournal struct {
	orm sql.ORM
}

func (j *CommandJournal) Recent(ctx context.Context, vehicle string, limit int) ([]domain.CommandRecord, error) {
	switch {
	case limit <= 0:
		limit = DefaultJournalLimit
	case limit > MaxJournalLimit:
		limit = MaxJournalLimit
	}

	var entities internal.CommandRecordSet
	err := j.orm.
		WithContext(ctx).
		Where("vehicle = ?", vehicle).
		Order("updated_at desc").
		Limit(limit).
		Find(&entities).
		Error()

	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	return entities.ToDomain(), nil
}

func (j *CommandJournal) Get(ctx context.Context, id domain.ID) (domain.CommandRecord, error) {
	return j.find(ctx, id.String())
}

func (j *CommandJournal) TopicName() pubsub.Topic {
	return dto.TopicCommandResults
}

func (j *CommandJournal) Prototype() pubsub.Prototype {
	return dto.CommandResult{}
}

// RecordID keys the journal by command id. Results are published keyed by vehicle.
func (j *CommandJournal) RecordID(_ pubsub.Key, message pubsub.Message) (string, error) {
	result, err := commandResult(message)
	if err != nil {
		return "", err
	}
	if result.CommandID == "" {
		return "", errors.New("command result without command id")
	}
	return result.CommandID, nil
}

func (j *CommandJournal) GetByID(ctx context.Context, id string) (pubsub.Message, error) {
	return j.find(ctx, id)
}

func (j *CommandJournal) Create(ctx context.Context, key pubsub.Key, message pubsub.Message) error {
	result, err := commandResult(message)
	if err != nil {
		return err
	}

	record := apply(domain.CommandRecord{CommandID: domain.ID(key)}, result)
	entity := internal.FromCommandRecord(record)
	err = j.orm.WithContext(ctx).Create(&entity).Error()
	if err != nil {
		return fmt.Errorf("creating command record %s: %w", key, err)
	}
	return nil
}

func (j *CommandJournal) Update(ctx context.Context, key pubsub.Key, message pubsub.Message) error {
	result, err := commandResult(message)
	if err != nil {
		return err
	}

	existing, err := j.find(ctx, string(key))
	if err != nil {
		return err
	}

	entity := internal.FromCommandRecord(apply(existing, result))
	err = j.orm.WithContext(ctx).Save(&entity).Error()
	if err != nil {
		return fmt.Errorf("saving command record %s: %w", key, err)
	}
	return nil
}

func (j *CommandJournal) find(ctx context.Context, id string) (domain.CommandRecord, error) {
	var entity internal.CommandRecord
	err := j.orm.
		WithContext(ctx).
		First(&entity, "command_id = ?", id).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.CommandRecord{}, fmt.Errorf("command %s: %w: %w", id, domain.ErrCommandNotFound, err)
	}
	if err != nil {
		return domain.CommandRecord{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func apply(record domain.CommandRecord, result dto.CommandResult) domain.CommandRecord {
	if result.Vehicle != "" {
		record.Vehicle = result.Vehicle
	}
	if result.Destination != "" {
		record.Destination = result.Destination
	}
	if result.Operation != "" {
		record.Operation = result.Operation
	}
	return record.Apply(domain.CommandRecordStatus(result.Status), result.Reason, result.Timestamp)
}

func commandResult(message pubsub.Message) (dto.CommandResult, error) {
	switch result := message.(type) {
	case *dto.CommandResult:
		return *result, nil
	case dto.CommandResult:
		return result, nil
	default:
		return dto.CommandResult{}, fmt.Errorf("unexpected command result message %T", message)
	}
}
