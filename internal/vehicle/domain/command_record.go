package domain

import (
	"errors"
	"time"
)

var ErrCommandNotFound = errors.New("command not found")

type CommandRecordStatus string

const (
	CommandRecordAccepted CommandRecordStatus = "accepted"
	CommandRecordRejected CommandRecordStatus = "rejected"
	CommandRecordExecuted CommandRecordStatus = "executed"
)

// CommandRecord is the journal entry of a movement command, built from the results the
// bridge reported for it.
type CommandRecord struct {
	CommandID   ID
	Vehicle     string
	Destination string
	Operation   string
	Status      CommandRecordStatus
	Reason      string
	AcceptedAt  *time.Time
	RejectedAt  *time.Time
	ExecutedAt  *time.Time
	UpdatedAt   time.Time
}

// Final reports whether no further result is expected for the command.
func (r CommandRecord) Final() bool {
	return r.Status == CommandRecordRejected || r.Status == CommandRecordExecuted
}

// Apply folds one reported result into the record. A final status is never replaced by an
// acceptance that arrives late.
func (r CommandRecord) Apply(status CommandRecordStatus, reason string, at time.Time) CommandRecord {
	at = at.UTC()
	switch status {
	case CommandRecordAccepted:
		r.AcceptedAt = &at
	case CommandRecordRejected:
		r.RejectedAt = &at
		r.Reason = reason
	case CommandRecordExecuted:
		r.ExecutedAt = &at
	}

	if status != CommandRecordAccepted || !r.Final() {
		r.Status = status
	}
	if at.After(r.UpdatedAt) {
		r.UpdatedAt = at
	}
	return r
}
