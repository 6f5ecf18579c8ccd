package usecases

import (
	"strconv"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/telegrams"
)

// applyStateUpdate runs on the kernel executor for every matched state response.
func (e *Engine) applyStateUpdate(current telegrams.StateResponse) {
	var previous telegrams.StateResponse
	if last := e.model.CurrentState(); last != nil {
		previous = *last
		e.model.SetPreviousState(previous)
	}
	e.model.SetCurrentState(current)

	if current.PositionID != previous.PositionID && current.PositionID != 0 {
		e.model.SetVehiclePosition(strconv.Itoa(int(current.PositionID)))
	}

	e.model.SetVehicleState(TranslateVehicleState(current.OperationState))

	for _, cmd := range e.tracker.Reconcile(previous, current) {
		e.model.CommandExecuted(cmd)
		e.count(_metricKeyCommandsExecuted)
	}
}

// TranslateVehicleState maps the reported operation state to the vehicle state.
func TranslateVehicleState(state telegrams.OperationState) domain.VehicleState {
	switch state {
	case telegrams.OperationIdle:
		return domain.VehicleStateIdle
	case telegrams.OperationMoving, telegrams.OperationActing:
		return domain.VehicleStateExecuting
	case telegrams.OperationCharging:
		return domain.VehicleStateCharging
	case telegrams.OperationError:
		return domain.VehicleStateError
	default:
		return domain.VehicleStateUnknown
	}
}
