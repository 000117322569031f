package get_month_calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingCalendar/internal/availability"
	getMonthCalendar "github.com/m04kA/SMC-BookingCalendar/internal/usecase/get_month_calendar"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp *getMonthCalendar.Response
	err  error
	req  *getMonthCalendar.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *getMonthCalendar.Request) (*getMonthCalendar.Response, error) {
	f.req = req
	return f.resp, f.err
}

func serve(h *Handler, professionalID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/professionals/"+professionalID+"/calendar"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"professionalId": professionalID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	october := types.YearMonth{Year: 2026, Month: time.October}
	uc := &fakeUseCase{resp: &getMonthCalendar.Response{
		ProfessionalID: 7,
		Month:          october,
		Today:          types.MustDateKey(2026, time.October, 15),
		Days: []getMonthCalendar.Day{
			{
				Date:        types.MustDateKey(2026, time.September, 27),
				WeekdayName: "Sunday",
				Reason:      availability.ReasonOutOfMonth,
			},
			{
				Date:           types.MustDateKey(2026, time.October, 19),
				WeekdayName:    "Monday",
				InCurrentMonth: true,
				Selectable:     true,
				BookingsCount:  2,
			},
		},
	}}

	rec := serve(NewHandler(uc, nopLogger{}), "7", "?month=2026-10&locale=en_US")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &getMonthCalendar.Request{ProfessionalID: 7, Month: october, Locale: "en_US"}, uc.req)
	assert.JSONEq(t, `{
		"professionalId": 7,
		"month": "2026-10",
		"today": "2026-10-15",
		"days": [
			{"date": "2026-09-27", "weekday": "Sunday", "inCurrentMonth": false, "isToday": false,
			 "selectable": false, "reason": "out_of_month", "bookingsCount": 0},
			{"date": "2026-10-19", "weekday": "Monday", "inCurrentMonth": true, "isToday": false,
			 "selectable": true, "bookingsCount": 2}
		]
	}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	cases := []struct {
		name           string
		professionalID string
		query          string
		ucErr          error
		status         int
	}{
		{"invalid professional", "-", "?month=2026-10", nil, http.StatusBadRequest},
		{"missing month", "7", "", nil, http.StatusBadRequest},
		{"invalid month", "7", "?month=2026-13", nil, http.StatusBadRequest},
		{"invalid input", "7", "?month=2026-10", fmt.Errorf("%w: professionalID must be positive", getMonthCalendar.ErrInvalidInput), http.StatusBadRequest},
		{"internal", "7", "?month=2026-10", fmt.Errorf("%w: db down", getMonthCalendar.ErrInternal), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeUseCase{err: tc.ucErr}, nopLogger{}), tc.professionalID, tc.query)
			assert.Equal(t, tc.status, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body["message"])
		})
	}
}
