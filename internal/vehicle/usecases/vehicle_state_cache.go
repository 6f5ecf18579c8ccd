package usecases

import (
	"context"
	"vehicle-bridge/internal/vehicle/domain"
)

//go:generate mockgen -source=vehicle_state_cache.go -destination=../../../test/unit/doubles/vehicle/usecases/vehicle_state_cache_mock.go -package=usecases -mock_names=VehicleStateCache=MockVehicleStateCache

// VehicleStateCache mirrors the latest vehicle snapshot for readers outside the engine.
// It is never read back into the engine.
type VehicleStateCache interface {
	SetSnapshot(ctx context.Context, snapshot domain.VehicleSnapshot) error
	GetSnapshot(ctx context.Context, vehicle string) (domain.VehicleSnapshot, bool)
	// LoadSnapshot returns the cached snapshot, filling the cache from load on a miss.
	LoadSnapshot(ctx context.Context, vehicle string, load func() domain.VehicleSnapshot) (domain.VehicleSnapshot, error)
}
