// Package slotservice клиент HTTP API слотов календаря.
// Метод LoadSlots подходит в качестве загрузчика для controller,
// LoadExceptions дает исключения для его конфигурации.
package slotservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

const requestIDHeader = "X-Request-ID"

// Client клиент для работы с сервисом слотов одного мастера
type Client struct {
	baseURL        string
	professionalID int64
	httpClient     *http.Client
	log            Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, professionalID int64, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:        baseURL,
		professionalID: professionalID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// LoadSlots получает слоты мастера на дату
func (c *Client) LoadSlots(ctx context.Context, date types.DateKey) ([]domain.Slot, error) {
	endpoint := fmt.Sprintf("%s/api/v1/professionals/%d/slots?date=%s",
		c.baseURL, c.professionalID, url.QueryEscape(date.String()))

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: %s", ErrDateNotSelectable, readMessage(resp.Body))
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, readMessage(resp.Body))
	}

	// Парсим ответ
	var body DaySlotsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if body.Date != date.String() {
		return nil, fmt.Errorf("%w: requested %s, got %s", ErrInvalidResponse, date, body.Date)
	}

	slots, err := toDomain(body.Slots)
	if err != nil {
		return nil, err
	}

	c.log.Info("slotservice: fetched %d slots professional_id=%d date=%s", len(slots), c.professionalID, date)
	return slots, nil
}

// LoadExceptions получает исключения календаря мастера: разрешенные даты целиком,
// заблокированные начиная с сегодняшнего дня
func (c *Client) LoadExceptions(ctx context.Context) ([]*domain.DateException, error) {
	endpoint := fmt.Sprintf("%s/api/v1/professionals/%d/exceptions", c.baseURL, c.professionalID)

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, readMessage(resp.Body))
	}

	var body ExceptionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	exceptions := make([]*domain.DateException, 0, len(body.Exceptions))
	for _, e := range body.Exceptions {
		date, err := types.ParseDateKey(e.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: exception date %q: %v", ErrInvalidResponse, e.Date, err)
		}
		kind := domain.ExceptionKind(e.Kind)
		if kind != domain.ExceptionBlocked && kind != domain.ExceptionAllowed {
			return nil, fmt.Errorf("%w: exception %s has unknown kind %q", ErrInvalidResponse, e.Date, e.Kind)
		}
		exceptions = append(exceptions, &domain.DateException{
			ProfessionalID: c.professionalID,
			Date:           date,
			Kind:           kind,
			Note:           e.Note,
		})
	}

	c.log.Info("slotservice: fetched %d exceptions professional_id=%d", len(exceptions), c.professionalID)
	return exceptions, nil
}

// get выполняет GET запрос со сгенерированным X-Request-ID
func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	c.log.Info("slotservice: GET %s request_id=%s", endpoint, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	return resp, nil
}

func toDomain(in []DaySlot) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0, len(in))
	for _, s := range in {
		t, err := types.ParseTimeOfDay(s.Time)
		if err != nil {
			return nil, fmt.Errorf("%w: slot time %q: %v", ErrInvalidResponse, s.Time, err)
		}
		if s.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: slot %s has duration %d", ErrInvalidResponse, s.Time, s.DurationMinutes)
		}
		slots = append(slots, domain.Slot{
			Time:            t,
			DurationMinutes: s.DurationMinutes,
			Available:       s.Available,
			Reason:          s.Reason,
		})
	}
	return slots, nil
}

// readMessage достает сообщение из тела ответа с ошибкой
func readMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	var errResp ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return string(raw)
}
