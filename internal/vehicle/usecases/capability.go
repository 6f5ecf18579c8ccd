package usecases

import (
	"strings"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/telegrams"
)

const (
	ReasonNotEnabled        = "Vehicle driver not enabled"
	ReasonNotConnected      = "Vehicle does not seem to be connected"
	ReasonLoadStateUnknown  = "Vehicle's load state is undefined"
	ReasonAlreadyLoaded     = "Cannot load when already loaded"
	ReasonNotLoaded         = "Cannot unload when not loaded"
	ReasonParkWhileLoaded   = "Vehicle shouldn't park while in a loaded state."
	ReasonChargeWhileLoaded = "Vehicle shouldn't charge while in a loaded state."
)

// CanExecute walks operations from the given load state and stops at the first one the
// vehicle could not perform.
func CanExecute(loadState telegrams.LoadState, operations []string) domain.Explanation {
	if loadState == telegrams.LoadUnknown {
		return domain.Rejected(ReasonLoadStateUnknown)
	}

	loaded := loadState == telegrams.LoadFull
	for _, operation := range operations {
		op := strings.ToLower(operation)
		if loaded {
			switch {
			case strings.HasPrefix(op, domain.OperationLoad):
				return domain.Rejected(ReasonAlreadyLoaded)
			case strings.HasPrefix(op, domain.OperationUnload):
				loaded = false
			case strings.HasPrefix(op, domain.OperationPark):
				return domain.Rejected(ReasonParkWhileLoaded)
			case strings.HasPrefix(op, domain.OperationCharge):
				return domain.Rejected(ReasonChargeWhileLoaded)
			}
			continue
		}

		switch {
		case strings.HasPrefix(op, domain.OperationLoad):
			loaded = true
		case strings.HasPrefix(op, domain.OperationUnload):
			return domain.Rejected(ReasonNotLoaded)
		}
	}

	return domain.Accepted()
}
