package get_exceptions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingCalendar/internal/api/handlers"
	getExceptions "github.com/m04kA/SMC-BookingCalendar/internal/usecase/get_exceptions"
)

const msgInvalidProfessionalID = "некорректный ID мастера"

type Handler struct {
	useCase GetExceptionsUseCase
	logger  Logger
}

func NewHandler(useCase GetExceptionsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/exceptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := strconv.ParseInt(mux.Vars(r)["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/exceptions - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getExceptions.Request{ProfessionalID: professionalID})
	if err != nil {
		switch {
		case errors.Is(err, getExceptions.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/exceptions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /professionals/{id}/exceptions - Failed to get exceptions: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/exceptions - Found %d exceptions: professional_id=%d",
		len(result.Exceptions), professionalID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
