package internal

import (
	"time"
	"vehicle-bridge/internal/vehicle/domain"
)

type CommandRecordSet []CommandRecord

func (CommandRecordSet) TableName() string {
	return "vehicle_command_journal"
}

func (s CommandRecordSet) ToDomain() []domain.CommandRecord {
	result := make([]domain.CommandRecord, len(s))
	for i, v := range s {
		result[i] = v.ToDomain()
	}
	return result
}

type CommandRecord struct {
	CommandID   string `gorm:"primaryKey"`
	Vehicle     string `gorm:"index"`
	Destination string
	Operation   string
	Status      string
	Reason      string
	AcceptedAt  *time.Time
	RejectedAt  *time.Time
	ExecutedAt  *time.Time
	UpdatedAt   time.Time `gorm:"index;autoUpdateTime:false"`
}

func (CommandRecord) TableName() string {
	return "vehicle_command_journal"
}

func FromCommandRecord(r domain.CommandRecord) CommandRecord {
	return CommandRecord{
		CommandID:   r.CommandID.String(),
		Vehicle:     r.Vehicle,
		Destination: r.Destination,
		Operation:   r.Operation,
		Status:      string(r.Status),
		Reason:      r.Reason,
		AcceptedAt:  r.AcceptedAt,
		RejectedAt:  r.RejectedAt,
		ExecutedAt:  r.ExecutedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r CommandRecord) ToDomain() domain.CommandRecord {
	return domain.CommandRecord{
		CommandID:   domain.ID(r.CommandID),
		Vehicle:     r.Vehicle,
		Destination: r.Destination,
		Operation:   r.Operation,
		Status:      domain.CommandRecordStatus(r.Status),
		Reason:      r.Reason,
		AcceptedAt:  utc(r.AcceptedAt),
		RejectedAt:  utc(r.RejectedAt),
		ExecutedAt:  utc(r.ExecutedAt),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
