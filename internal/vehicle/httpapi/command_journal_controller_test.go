package httpapi_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"
	"vehicle-bridge/internal/vehicle/domain"
	"vehicle-bridge/internal/vehicle/httpapi"
	mockusecases "vehicle-bridge/test/unit/doubles/vehicle/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("CommandJournalController", func() {
	var (
		ctrl        *gomock.Controller
		mockJournal *mockusecases.MockCommandJournal
		router      *http.ServeMux
		recorder    *httptest.ResponseRecorder
		record      domain.CommandRecord
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockJournal = mockusecases.NewMockCommandJournal(ctrl)
		router = http.NewServeMux()
		httpapi.NewCommandJournalController("agv-01", mockJournal).AddRoutes(router)
		recorder = httptest.NewRecorder()

		accepted := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		executed := accepted.Add(time.Minute)
		record = domain.CommandRecord{
			CommandID:   "cmd-1",
			Vehicle:     "agv-01",
			Destination: "point-b",
			Operation:   "load",
			Status:      domain.CommandRecordExecuted,
			AcceptedAt:  &accepted,
			ExecutedAt:  &executed,
			UpdatedAt:   executed,
		}
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	serve := func(target string) {
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	}

	decode := func() map[string]any {
		var body map[string]any
		Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
		return body
	}

	Context("history", func() {
		It("lists the recent commands of the vehicle", func() {
			mockJournal.EXPECT().Recent(gomock.Any(), "agv-01", 10).Return([]domain.CommandRecord{record}, nil)

			serve("/vehicle/commands/history?limit=10")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			data := decode()["data"].([]any)
			Expect(data).To(HaveLen(1))
			entry := data[0].(map[string]any)
			Expect(entry["id"]).To(Equal("cmd-1"))
			Expect(entry["status"]).To(Equal("executed"))
			Expect(entry["executed_at"]).To(Equal("2024-05-01T12:01:00Z"))
			Expect(entry).NotTo(HaveKey("rejected_at"))
		})

		It("falls back to the default limit", func() {
			mockJournal.EXPECT().Recent(gomock.Any(), "agv-01", 50).Return(nil, nil)

			serve("/vehicle/commands/history?limit=lots")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(decode()["data"]).To(BeEmpty())
		})

		It("reports journal failures", func() {
			mockJournal.EXPECT().Recent(gomock.Any(), "agv-01", 50).Return(nil, errors.New("database is locked"))

			serve("/vehicle/commands/history")

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			Expect(decode()["message"]).To(Equal("failed to read command journal"))
		})
	})

	Context("single command", func() {
		It("returns the record", func() {
			mockJournal.EXPECT().Get(gomock.Any(), domain.ID("cmd-1")).Return(record, nil)

			serve("/vehicle/commands/cmd-1")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			body := decode()
			Expect(body["destination"]).To(Equal("point-b"))
			Expect(body["accepted_at"]).To(Equal("2024-05-01T12:00:00Z"))
		})

		It("answers 404 for unknown commands", func() {
			mockJournal.EXPECT().Get(gomock.Any(), domain.ID("cmd-404")).
				Return(domain.CommandRecord{}, fmt.Errorf("command cmd-404: %w", domain.ErrCommandNotFound))

			serve("/vehicle/commands/cmd-404")

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})

		It("reports journal failures", func() {
			mockJournal.EXPECT().Get(gomock.Any(), domain.ID("cmd-1")).Return(domain.CommandRecord{}, errors.New("database is locked"))

			serve("/vehicle/commands/cmd-1")

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
