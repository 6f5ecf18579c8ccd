package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"vehicle-bridge/internal/infra/cache"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/persistence/internal"
	"vehicle-bridge/internal/vehicle/usecases"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	DefaultSnapshotTTL = 24 * time.Hour
	snapshotKeyPrefix  = "vehicle_state:"
)

// VehicleStateCache keeps msgpack encoded snapshots in a cache.Cache. Backed by a
// cache.MemoryCache it serves a single process, backed by a cache.RedisCache it is
// shared by every bridge instance.
type VehicleStateCache struct {
	cache cache.Cache
	ttl   time.Duration
}

var _ usecases.VehicleStateCache = (*VehicleStateCache)(nil)

func NewVehicleStateCache(c cache.Cache, ttl time.Duration) *VehicleStateCache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &VehicleStateCache{cache: c, ttl: ttl}
}

func (s *VehicleStateCache) SetSnapshot(ctx context.Context, snapshot domain.VehicleSnapshot) error {
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	if err := s.cache.Set(ctx, snapshotKey(snapshot.Settings.Name), data, s.ttl); err != nil {
		return fmt.Errorf("caching snapshot of %s: %w", snapshot.Settings.Name, err)
	}
	return nil
}

func (s *VehicleStateCache) GetSnapshot(ctx context.Context, vehicle string) (domain.VehicleSnapshot, bool) {
	data, err := s.cache.Get(ctx, snapshotKey(vehicle))
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Error("reading cached snapshot",
				slog.String("vehicle", vehicle),
				slog.Any("error", err))
		}
		return domain.VehicleSnapshot{}, false
	}

	snapshot, err := decodeSnapshot(data)
	if err != nil {
		slog.Error("decoding cached snapshot",
			slog.String("vehicle", vehicle),
			slog.Any("error", err))
		return domain.VehicleSnapshot{}, false
	}
	return snapshot, true
}

func (s *VehicleStateCache) LoadSnapshot(ctx context.Context, vehicle string, load func() domain.VehicleSnapshot) (domain.VehicleSnapshot, error) {
	data, err := s.cache.GetOrLoad(ctx, snapshotKey(vehicle), s.ttl, func(context.Context) ([]byte, error) {
		return encodeSnapshot(load())
	})
	if err != nil {
		return domain.VehicleSnapshot{}, fmt.Errorf("loading snapshot of %s: %w", vehicle, err)
	}
	return decodeSnapshot(data)
}

func snapshotKey(vehicle string) string {
	return snapshotKeyPrefix + vehicle
}

func encodeSnapshot(snapshot domain.VehicleSnapshot) ([]byte, error) {
	data, err := msgpack.Marshal(internal.FromSnapshot(snapshot))
	if err != nil {
		return nil, fmt.Errorf("msgpack marshaling: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (domain.VehicleSnapshot, error) {
	var record internal.Snapshot
	if err := msgpack.Unmarshal(data, &record); err != nil {
		return domain.VehicleSnapshot{}, fmt.Errorf("msgpack unmarshaling: %w", err)
	}
	if record.Version != internal.SnapshotVersion {
		return domain.VehicleSnapshot{}, fmt.Errorf("snapshot version %d not supported", record.Version)
	}
	return record.ToDomain(), nil
}
