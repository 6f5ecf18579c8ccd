package usecases

import (
	"vehicle-bridge/internal/vehicle/domain"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	descConnectionState = prometheus.NewDesc(
		"vehicle_bridge_connection_state",
		"Connection state of the vehicle link, 1 for the current state.",
		[]string{"vehicle", "state"}, nil,
	)
	descVehicleEnabled = prometheus.NewDesc(
		"vehicle_bridge_vehicle_enabled",
		"Whether the vehicle driver is enabled.",
		[]string{"vehicle"}, nil,
	)
	descVehicleIdle = prometheus.NewDesc(
		"vehicle_bridge_vehicle_idle",
		"Whether the vehicle link is idle.",
		[]string{"vehicle"}, nil,
	)
	descPendingCommands = prometheus.NewDesc(
		"vehicle_bridge_pending_commands",
		"Movement commands sent to the vehicle and not yet finished.",
		[]string{"vehicle"}, nil,
	)
)

var connectionStates = []domain.ConnectionState{
	domain.ConnectionDisabled,
	domain.ConnectionDisconnected,
	domain.ConnectionConnecting,
	domain.ConnectionConnected,
}

// EngineCollector exposes the engine state to prometheus at scrape time.
type EngineCollector struct {
	service VehicleService
}

var _ prometheus.Collector = &EngineCollector{}

func NewEngineCollector(service VehicleService) *EngineCollector {
	return &EngineCollector{service: service}
}

func (c *EngineCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- descConnectionState
	ch <- descVehicleEnabled
	ch <- descVehicleIdle
	ch <- descPendingCommands
}

func (c *EngineCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := c.service.Snapshot()
	vehicle := snapshot.Settings.Name
	current := c.service.ConnectionState()

	for _, state := range connectionStates {
		ch <- prometheus.MustNewConstMetric(descConnectionState, prometheus.GaugeValue,
			boolValue(state == current), vehicle, string(state))
	}
	ch <- prometheus.MustNewConstMetric(descVehicleEnabled, prometheus.GaugeValue, boolValue(snapshot.Enabled), vehicle)
	ch <- prometheus.MustNewConstMetric(descVehicleIdle, prometheus.GaugeValue, boolValue(snapshot.Idle), vehicle)
	ch <- prometheus.MustNewConstMetric(descPendingCommands, prometheus.GaugeValue,
		float64(len(c.service.PendingCommands())), vehicle)
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
