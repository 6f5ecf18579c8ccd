package internal

import (
	"time"
	"vehicle-bridge/internal/vehicle/domain"
)

type CommandRecordResponse struct {
	ID          string     `json:"id"`
	Vehicle     string     `json:"vehicle"`
	Destination string     `json:"destination,omitempty"`
	Operation   string     `json:"operation,omitempty"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
	ExecutedAt  *time.Time `json:"executed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CommandHistoryResponse struct {
	Data []CommandRecordResponse `json:"data"`
}

func ToCommandRecordResponse(r domain.CommandRecord) CommandRecordResponse {
	return CommandRecordResponse{
		ID:          r.CommandID.String(),
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

func ToCommandHistoryResponse(records []domain.CommandRecord) CommandHistoryResponse {
	data := make([]CommandRecordResponse, len(records))
	for i, r := range records {
		data[i] = ToCommandRecordResponse(r)
	}
	return CommandHistoryResponse{Data: data}
}
