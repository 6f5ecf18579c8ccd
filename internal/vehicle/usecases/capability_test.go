package usecases_test

import (
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/telegrams"
	"vehicle-bridge/internal/vehicle/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CanExecute", func() {
	DescribeTable("operation sequences",
		func(load telegrams.LoadState, operations []string, expected domain.Explanation) {
			Expect(usecases.CanExecute(load, operations)).To(Equal(expected))
		},
		Entry("unknown load state", telegrams.LoadUnknown, []string{"park"},
			domain.Rejected(usecases.ReasonLoadStateUnknown)),
		Entry("load then unload while empty", telegrams.LoadEmpty, []string{"load", "unload"},
			domain.Accepted()),
		Entry("unload while empty", telegrams.LoadEmpty, []string{"unload"},
			domain.Rejected(usecases.ReasonNotLoaded)),
		Entry("load twice", telegrams.LoadEmpty, []string{"load", "Load cargo"},
			domain.Rejected(usecases.ReasonAlreadyLoaded)),
		Entry("park while full", telegrams.LoadFull, []string{"park"},
			domain.Rejected(usecases.ReasonParkWhileLoaded)),
		Entry("charge while full", telegrams.LoadFull, []string{"CHARGE"},
			domain.Rejected(usecases.ReasonChargeWhileLoaded)),
		Entry("unload then park while full", telegrams.LoadFull, []string{"unload", "park"},
			domain.Accepted()),
		Entry("park and charge while empty", telegrams.LoadEmpty, []string{"park", "charge"},
			domain.Accepted()),
		Entry("nothing to do", telegrams.LoadFull, []string{},
			domain.Accepted()),
	)
})
