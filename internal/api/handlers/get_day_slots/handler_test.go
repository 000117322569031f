package get_day_slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	getDaySlots "github.com/m04kA/SMC-BookingCalendar/internal/usecase/get_day_slots"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp *getDaySlots.Response
	err  error
	req  *getDaySlots.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *getDaySlots.Request) (*getDaySlots.Response, error) {
	f.req = req
	return f.resp, f.err
}

func serve(h *Handler, professionalID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/professionals/"+professionalID+"/slots"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"professionalId": professionalID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	date := types.MustDateKey(2026, time.October, 19)
	uc := &fakeUseCase{resp: &getDaySlots.Response{
		ProfessionalID: 7,
		Date:           date,
		Slots: []domain.Slot{
			{Time: types.MustParseTimeOfDay("09:00"), DurationMinutes: 60, Available: true},
			{Time: types.MustParseTimeOfDay("09:30"), DurationMinutes: 60, Reason: domain.SlotReasonBooked},
		},
	}}

	rec := serve(NewHandler(uc, nopLogger{}), "7", "?date=2026-10-19")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, &getDaySlots.Request{ProfessionalID: 7, Date: date}, uc.req)

	var body DaySlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, DaySlotsResponse{
		ProfessionalID: 7,
		Date:           "2026-10-19",
		Slots: []DaySlot{
			{Time: "09:00", DurationMinutes: 60, Available: true},
			{Time: "09:30", DurationMinutes: 60, Available: false, Reason: "booked"},
		},
	}, body)
}

func TestHandle_EmptyDayIsEmptyArray(t *testing.T) {
	uc := &fakeUseCase{resp: &getDaySlots.Response{
		ProfessionalID: 7,
		Date:           types.MustDateKey(2026, time.October, 18),
		Slots:          []domain.Slot{},
	}}

	rec := serve(NewHandler(uc, nopLogger{}), "7", "?date=2026-10-18")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"professionalId":7,"date":"2026-10-18","slots":[]}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	cases := []struct {
		name           string
		professionalID string
		query          string
		ucErr          error
		status         int
	}{
		{"invalid professional", "abc", "?date=2026-10-19", nil, http.StatusBadRequest},
		{"missing date", "7", "", nil, http.StatusBadRequest},
		{"invalid date", "7", "?date=2026-02-30", nil, http.StatusBadRequest},
		{"invalid input", "7", "?date=2026-10-19", fmt.Errorf("%w: professionalID must be positive", getDaySlots.ErrInvalidInput), http.StatusBadRequest},
		{"not selectable", "7", "?date=2026-10-19", fmt.Errorf("%w: blocked", getDaySlots.ErrDateNotSelectable), http.StatusUnprocessableEntity},
		{"internal", "7", "?date=2026-10-19", fmt.Errorf("%w: db down", getDaySlots.ErrInternal), http.StatusInternalServerError},
		{"unexpected", "7", "?date=2026-10-19", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tc.ucErr}
			rec := serve(NewHandler(uc, nopLogger{}), tc.professionalID, tc.query)

			assert.Equal(t, tc.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.status, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}
