package avro

import (
	"fmt"

	"github.com/riferrei/srclient"
)

//go:generate mockgen -source=schema_registry.go -destination=../../../test/unit/doubles/vehicle/avro/schema_registry_mock.go -package=avro

// SchemaRegistry is the part of a Confluent schema registry the codec needs.
type SchemaRegistry interface {
	LatestSchemaID(subject string) (int, error)
	Register(subject, schema string) (int, error)
	SchemaByID(id int) (string, error)
}

var _ SchemaRegistry = (*ConfluentSchemaRegistry)(nil)

type ConfluentSchemaRegistry struct {
	client *srclient.SchemaRegistryClient
}

func NewConfluentSchemaRegistry(url string) *ConfluentSchemaRegistry {
	return &ConfluentSchemaRegistry{client: srclient.CreateSchemaRegistryClient(url)}
}

func (r *ConfluentSchemaRegistry) LatestSchemaID(subject string) (int, error) {
	schema, err := r.client.GetLatestSchema(subject)
	if err != nil {
		return 0, fmt.Errorf("latest schema of %s: %w", subject, err)
	}
	return schema.ID(), nil
}

func (r *ConfluentSchemaRegistry) Register(subject, schema string) (int, error) {
	registered, err := r.client.CreateSchema(subject, schema, srclient.Avro)
	if err != nil {
		return 0, fmt.Errorf("registering schema of %s: %w", subject, err)
	}
	return registered.ID(), nil
}

func (r *ConfluentSchemaRegistry) SchemaByID(id int) (string, error) {
	schema, err := r.client.GetSchema(id)
	if err != nil {
		return "", fmt.Errorf("schema %d: %w", id, err)
	}
	return schema.Schema(), nil
}
