// Package controller управляет состоянием календаря записи: просматриваемый месяц,
// выбранные дата и время, загрузка слотов и клавиатурная навигация.
package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/availability"
	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/internal/slotcache"
	"github.com/m04kA/SMC-BookingCalendar/internal/slots"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// Controller календарь записи одного мастера.
// Колбэки вызываются без удержания внутренней блокировки,
// поэтому из них можно вызывать методы контроллера.
type Controller struct {
	mu   sync.Mutex
	view ViewState

	cfg          Config
	policy       *availability.Policy
	cache        *slotcache.Cache
	loader       slotcache.Loader
	timeProvider TimeProvider
	logger       Logger
	metrics      Metrics
	ctx          context.Context

	onDateSelect  DateSelectFunc
	onTimeSelect  TimeSelectFunc
	onSlotsLoaded SlotsLoadedFunc
	onSlotsError  SlotsErrorFunc
}

// New создает контроллер. Просматриваемый месяц - текущий.
func New(cfg Config, opts ...Option) (*Controller, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	policy, err := availability.NewPolicy(cfg.Availability)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	c := &Controller{
		cfg:          cfg,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       nopLogger{},
		ctx:          context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.loader == nil {
		c.loader = c.generateSlots
	}

	c.cache = slotcache.New(
		slotcache.WithMetrics(c.metrics),
		slotcache.WithLogger(c.logger),
		slotcache.WithOnSettle(c.handleSettle),
	)
	c.view.ViewedMonth = c.today().YearMonth()

	return c, nil
}

// SelectDate выбирает дату и запускает загрузку слотов на нее.
// Повторный выбор той же даты без WithForceRefresh ничего не делает.
// Для недоступной даты возвращает ErrInvalidSelection, состояние не меняется.
func (c *Controller) SelectDate(date types.DateKey, opts ...SelectOption) error {
	var o selectOptions
	for _, opt := range opts {
		opt(&o)
	}

	c.mu.Lock()
	if !o.forceRefresh && c.view.SelectedDate != nil && *c.view.SelectedDate == date {
		c.mu.Unlock()
		return nil
	}

	decision := c.policy.Classify(date, c.today(), c.view.ViewedMonth)
	if !decision.Selectable {
		c.mu.Unlock()
		return fmt.Errorf("%w: date %s is not selectable: %s", ErrInvalidSelection, date, decision.Reason)
	}

	selected := date
	c.view.SelectedDate = &selected
	c.view.SelectedTime = nil
	c.mu.Unlock()

	c.logger.Info("controller: date selected date=%s force=%t", date, o.forceRefresh)
	if c.onDateSelect != nil {
		c.onDateSelect(date)
	}

	c.load(date, o.forceRefresh)
	return nil
}

// SelectTime выбирает время в загруженных слотах выбранной даты.
// Время должно совпадать с началом доступного слота.
func (c *Controller) SelectTime(t types.TimeOfDay) error {
	c.mu.Lock()
	if c.view.SelectedDate == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: no date selected", ErrInvalidSelection)
	}
	date := *c.view.SelectedDate

	entry := c.cache.Entry(date)
	if entry.Status() != slotcache.StatusResolved {
		c.mu.Unlock()
		return fmt.Errorf("%w: slots for %s are not loaded", ErrInvalidSelection, date)
	}
	if _, ok := domain.FindAvailable(entry.Slots, t); !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: time %s is not available on %s", ErrInvalidSelection, t, date)
	}

	selected := t
	c.view.SelectedTime = &selected
	c.mu.Unlock()

	if c.onTimeSelect != nil {
		c.onTimeSelect(t, date)
	}
	return nil
}

// NavigateMonth сдвигает просматриваемый месяц на delta месяцев.
// Выбор сохраняется, даже если выбранная дата вне нового месяца.
func (c *Controller) NavigateMonth(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.ViewedMonth = c.view.ViewedMonth.AddMonths(delta)
}

// HandleKey обрабатывает клавишу навигации.
// Стрелки сдвигают выбор на день или неделю от выбранной даты (или от сегодня);
// если целевая дата недоступна, выбор не меняется.
func (c *Controller) HandleKey(key Key) error {
	switch key {
	case KeyArrowLeft:
		return c.moveSelection(-1)
	case KeyArrowRight:
		return c.moveSelection(1)
	case KeyArrowUp:
		return c.moveSelection(-7)
	case KeyArrowDown:
		return c.moveSelection(7)
	case KeyPageUp:
		c.NavigateMonth(-1)
		return nil
	case KeyPageDown:
		c.NavigateMonth(1)
		return nil
	case KeyHome:
		c.mu.Lock()
		c.view.ViewedMonth = c.today().YearMonth()
		c.mu.Unlock()
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
}

func (c *Controller) moveSelection(days int) error {
	c.mu.Lock()
	today := c.today()
	base := today
	if c.view.SelectedDate != nil {
		base = *c.view.SelectedDate
	}
	candidate := base.AddDays(days)

	if !c.policy.ClassifyDate(candidate, today).Selectable {
		c.mu.Unlock()
		return nil
	}
	c.view.ViewedMonth = candidate.YearMonth()
	c.mu.Unlock()

	return c.SelectDate(candidate)
}

// ClearSelection сбрасывает выбранные дату и время. Кэш слотов сохраняется.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SelectedDate = nil
	c.view.SelectedTime = nil
}

// Refresh перезагружает слоты выбранной даты в обход кэша
func (c *Controller) Refresh() error {
	c.mu.Lock()
	if c.view.SelectedDate == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: no date selected", ErrInvalidSelection)
	}
	date := *c.view.SelectedDate

	decision := c.policy.ClassifyDate(date, c.today())
	if !decision.Selectable {
		c.mu.Unlock()
		return fmt.Errorf("%w: date %s is not selectable: %s", ErrInvalidSelection, date, decision.Reason)
	}
	c.view.SelectedTime = nil
	c.mu.Unlock()

	c.load(date, true)
	return nil
}

// Invalidate сбрасывает загруженные слоты указанных дат, без дат - всех.
// Хост вызывает его, когда данные на стороне загрузчика изменились.
// Если сброшена выбранная дата, выбранное время очищается и слоты загружаются заново.
func (c *Controller) Invalidate(dates ...types.DateKey) {
	c.mu.Lock()
	if len(dates) == 0 {
		c.cache.Reset()
	} else {
		for _, date := range dates {
			c.cache.Invalidate(date)
		}
	}

	var reload *types.DateKey
	if c.view.SelectedDate != nil && (len(dates) == 0 || containsDate(dates, *c.view.SelectedDate)) {
		date := *c.view.SelectedDate
		reload = &date
		c.view.SelectedTime = nil
	}
	c.mu.Unlock()

	c.logger.Info("controller: slots invalidated dates=%v", dates)
	if reload != nil {
		c.load(*reload, false)
	}
}

// State возвращает текущее состояние
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.view.SelectedTime != nil:
		return StateSlotSelected
	case c.view.SelectedDate != nil:
		return StateDateSelected
	default:
		return StateIdle
	}
}

// View возвращает копию состояния отображения
func (c *Controller) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := ViewState{ViewedMonth: c.view.ViewedMonth}
	if c.view.SelectedDate != nil {
		date := *c.view.SelectedDate
		view.SelectedDate = &date
	}
	if c.view.SelectedTime != nil {
		t := *c.view.SelectedTime
		view.SelectedTime = &t
	}
	return view
}

// SelectedDateTime возвращает выбранные дату и время как момент в часовом поясе календаря
func (c *Controller) SelectedDateTime() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view.SelectedDate == nil || c.view.SelectedTime == nil {
		return time.Time{}, false
	}
	return c.view.SelectedDate.At(*c.view.SelectedTime, c.cfg.Location), true
}

// IsDateSelectable проверяет дату относительно просматриваемого месяца
func (c *Controller) IsDateSelectable(date types.DateKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.policy.Classify(date, c.today(), c.view.ViewedMonth).Selectable
}

// MonthGrid возвращает сетку 6x7 просматриваемого месяца с решениями о доступности
func (c *Controller) MonthGrid() []GridDay {
	c.mu.Lock()
	viewed := c.view.ViewedMonth
	var selected *types.DateKey
	if c.view.SelectedDate != nil {
		date := *c.view.SelectedDate
		selected = &date
	}
	today := c.today()
	c.mu.Unlock()

	cells := calendar.MonthGrid(viewed)
	grid := make([]GridDay, 0, len(cells))
	for _, cell := range cells {
		grid = append(grid, GridDay{
			Cell:        cell,
			Decision:    c.policy.Classify(cell.Date, today, viewed),
			WeekdayName: calendar.WeekdayName(cell.Date, c.cfg.Locale),
			IsToday:     cell.Date == today,
			IsSelected:  selected != nil && *selected == cell.Date,
		})
	}
	return grid
}

// Slots возвращает снимок кэша слотов на дату
func (c *Controller) Slots(date types.DateKey) slotcache.Entry {
	return c.cache.Entry(date)
}

// WaitSlots ждет завершения загрузки слотов на дату
func (c *Controller) WaitSlots(ctx context.Context, date types.DateKey) (slotcache.Entry, error) {
	return c.cache.Wait(ctx, date)
}

// Config возвращает конфигурацию с подставленными значениями по умолчанию
func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) load(date types.DateKey, force bool) {
	lookup := c.cache.GetOrLoad(c.ctx, date, c.loader, force)
	if lookup.Status == slotcache.StatusResolved && c.onSlotsLoaded != nil {
		c.onSlotsLoaded(date, lookup.Slots)
	}
}

// handleSettle получает зафиксированные кэшем результаты загрузки
func (c *Controller) handleSettle(date types.DateKey, loaded []domain.Slot, err error) {
	if err != nil {
		c.logger.Error("controller: failed to load slots date=%s: %v", date, err)
		if c.onSlotsError != nil {
			c.onSlotsError(date, err)
		}
		return
	}

	if c.onSlotsLoaded != nil {
		c.onSlotsLoaded(date, loaded)
	}
}

// generateSlots загрузчик по умолчанию: сетка слотов из рабочих часов без учета записей
func (c *Controller) generateSlots(_ context.Context, date types.DateKey) ([]domain.Slot, error) {
	schedule := c.cfg.Availability.WorkingHours.ForDate(date)
	return slots.Generate(schedule, c.cfg.ServiceDurationMinutes, c.cfg.SlotIntervalMinutes), nil
}

// today текущая дата в часовом поясе календаря
func (c *Controller) today() types.DateKey {
	return types.DateKeyFromTime(c.timeProvider.Now().In(c.cfg.Location))
}

func containsDate(dates []types.DateKey, date types.DateKey) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}
