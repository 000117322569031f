package controller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingCalendar/internal/availability"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/internal/slotcache"
	"github.com/m04kA/SMC-BookingCalendar/pkg/metrics"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// 2026-10-15 - четверг
var (
	today    = types.MustDateKey(2026, time.October, 15)
	monday   = types.MustDateKey(2026, time.October, 19)
	saturday = types.MustDateKey(2026, time.October, 17)
	sunday   = types.MustDateKey(2026, time.October, 18)
)

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

func todayAt(hour int) TimeProvider {
	return &fakeTimeProvider{now: time.Date(2026, time.October, 15, hour, 0, 0, 0, time.UTC)}
}

func workingHours() domain.WorkingHours {
	weekday := domain.Open(types.MustParseTimeOfDay("09:00"), types.MustParseTimeOfDay("18:00"))
	return domain.WorkingHours{
		Monday:    weekday,
		Tuesday:   weekday,
		Wednesday: weekday,
		Thursday:  weekday,
		Friday:    weekday,
		Saturday:  domain.Open(types.MustParseTimeOfDay("09:00"), types.MustParseTimeOfDay("14:00")),
		Sunday:    domain.Closed(),
	}
}

func testConfig() Config {
	return Config{
		Availability:           availability.Config{WorkingHours: workingHours()},
		ServiceDurationMinutes: 60,
		SlotIntervalMinutes:    30,
		Location:               time.UTC,
	}
}

func newController(t *testing.T, cfg Config, opts ...Option) *Controller {
	t.Helper()
	opts = append([]Option{WithTimeProvider(todayAt(10))}, opts...)
	c, err := New(cfg, opts...)
	require.NoError(t, err)
	return c
}

func waitSlots(t *testing.T, c *Controller, date types.DateKey) slotcache.Entry {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	entry, err := c.WaitSlots(ctx, date)
	require.NoError(t, err)
	return entry
}

func slotTimes(slots []domain.Slot) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.Time.String()
	}
	return result
}

// countingLoader сразу отдает один слот и считает вызовы
type countingLoader struct {
	calls atomic.Int32
}

func (l *countingLoader) load(context.Context, types.DateKey) ([]domain.Slot, error) {
	l.calls.Add(1)
	return []domain.Slot{{Time: types.MustParseTimeOfDay("10:00"), DurationMinutes: 60, Available: true}}, nil
}

// gatedLoader отвечает на i-й вызов только после release(i)
type gatedLoader struct {
	mu      sync.Mutex
	calls   int
	gates   []chan struct{}
	results [][]domain.Slot
}

func newGatedLoader(results ...[]domain.Slot) *gatedLoader {
	l := &gatedLoader{gates: make([]chan struct{}, len(results)), results: results}
	for i := range l.gates {
		l.gates[i] = make(chan struct{})
	}
	return l
}

func (l *gatedLoader) load(ctx context.Context, _ types.DateKey) ([]domain.Slot, error) {
	l.mu.Lock()
	i := l.calls
	l.calls++
	l.mu.Unlock()

	select {
	case <-l.gates[i]:
		return l.results[i], nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *gatedLoader) release(i int) {
	close(l.gates[i])
}

func (l *gatedLoader) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

type staleCounter struct {
	stale atomic.Int32
}

func (m *staleCounter) SlotCacheLookup(string) {}

func (m *staleCounter) SlotLoadFinished(outcome string, _ time.Duration) {
	if outcome == metrics.LoadStale {
		m.stale.Add(1)
	}
}

func TestNew_InitialState(t *testing.T) {
	c := newController(t, testConfig())

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, types.YearMonth{Year: 2026, Month: time.October}, c.View().ViewedMonth)
	_, ok := c.SelectedDateTime()
	assert.False(t, ok)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Availability.Window = domain.BookingWindowPolicy{MinAdvanceDays: 10, MaxAdvanceDays: 5}
	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = testConfig()
	cfg.SlotIntervalMinutes = 1
	_, err = New(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNew_Defaults(t *testing.T) {
	c := newController(t, Config{Availability: availability.Config{WorkingHours: workingHours()}})

	cfg := c.Config()
	assert.Equal(t, domain.DefaultServiceDurationMinutes, cfg.ServiceDurationMinutes)
	assert.Equal(t, domain.DefaultSlotIntervalMinutes, cfg.SlotIntervalMinutes)
	assert.Equal(t, domain.DefaultLocale, cfg.Locale)
	assert.Equal(t, time.Local, cfg.Location)
}

func TestSelectDate_SameDateTwiceLoadsOnce(t *testing.T) {
	loader := &countingLoader{}
	var selected []types.DateKey
	c := newController(t, testConfig(),
		WithLoader(loader.load),
		WithOnDateSelect(func(date types.DateKey) { selected = append(selected, date) }),
	)

	require.NoError(t, c.SelectDate(monday))
	waitSlots(t, c, monday)
	require.NoError(t, c.SelectDate(monday))
	waitSlots(t, c, monday)

	assert.Equal(t, int32(1), loader.calls.Load())
	assert.Equal(t, []types.DateKey{monday}, selected)
	assert.Equal(t, StateDateSelected, c.State())
}

func TestSelectDate_ReturningToDateUsesCache(t *testing.T) {
	loader := &countingLoader{}
	var loaded []types.DateKey
	var mu sync.Mutex
	c := newController(t, testConfig(),
		WithLoader(loader.load),
		WithOnSlotsLoaded(func(date types.DateKey, _ []domain.Slot) {
			mu.Lock()
			loaded = append(loaded, date)
			mu.Unlock()
		}),
	)

	tuesday := monday.AddDays(1)
	require.NoError(t, c.SelectDate(monday))
	waitSlots(t, c, monday)
	require.NoError(t, c.SelectDate(tuesday))
	waitSlots(t, c, tuesday)
	require.NoError(t, c.SelectDate(monday))

	assert.Equal(t, int32(2), loader.calls.Load())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []types.DateKey{monday, tuesday, monday}, loaded)
}

func TestSelectDate_ForcedRefreshLatestWins(t *testing.T) {
	first := []domain.Slot{{Time: types.MustParseTimeOfDay("09:00"), DurationMinutes: 60, Available: true}}
	second := []domain.Slot{{Time: types.MustParseTimeOfDay("15:00"), DurationMinutes: 60, Available: true}}
	loader := newGatedLoader(first, second)
	counter := &staleCounter{}

	var loadedCount atomic.Int32
	c := newController(t, testConfig(),
		WithLoader(loader.load),
		WithMetrics(counter),
		WithOnSlotsLoaded(func(types.DateKey, []domain.Slot) { loadedCount.Add(1) }),
	)

	require.NoError(t, c.SelectDate(monday))
	require.Eventually(t, func() bool { return loader.callCount() == 1 }, time.Second, time.Millisecond)
	require.NoError(t, c.SelectDate(monday, WithForceRefresh()))
	require.Eventually(t, func() bool { return loader.callCount() == 2 }, time.Second, time.Millisecond)

	// второй запрос завершается раньше первого
	loader.release(1)
	entry := waitSlots(t, c, monday)
	assert.Equal(t, second, entry.Slots)

	loader.release(0)
	require.Eventually(t, func() bool { return counter.stale.Load() == 1 }, time.Second, time.Millisecond)

	entry = c.Slots(monday)
	assert.Equal(t, second, entry.Slots)
	assert.False(t, entry.Loading)
	assert.Equal(t, int32(1), loadedCount.Load())
}

func TestSelectDate_Unselectable(t *testing.T) {
	loader := &countingLoader{}
	c := newController(t, testConfig(), WithLoader(loader.load))

	for _, date := range []types.DateKey{
		sunday,                                     // выходной
		today.AddDays(-1),                          // прошедшая дата
		types.MustDateKey(2026, time.November, 2), // другой месяц
	} {
		err := c.SelectDate(date)
		assert.ErrorIs(t, err, ErrInvalidSelection, date.String())
	}

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, int32(0), loader.calls.Load())

	c.NavigateMonth(1)
	assert.NoError(t, c.SelectDate(types.MustDateKey(2026, time.November, 2)))
}

func TestSelectDate_RejectedKeepsPreviousSelection(t *testing.T) {
	c := newController(t, testConfig())

	require.NoError(t, c.SelectDate(monday))
	assert.ErrorIs(t, c.SelectDate(sunday), ErrInvalidSelection)

	view := c.View()
	require.NotNil(t, view.SelectedDate)
	assert.Equal(t, monday, *view.SelectedDate)
}

func TestSelectDate_MondaySlotsFromGenerator(t *testing.T) {
	c := newController(t, testConfig())

	require.NoError(t, c.SelectDate(monday))
	entry := waitSlots(t, c, monday)

	require.Equal(t, slotcache.StatusResolved, entry.Status())
	times := slotTimes(entry.Slots)
	require.Len(t, times, 17)
	assert.Equal(t, "09:00", times[0])
	assert.Equal(t, "09:30", times[1])
	assert.Equal(t, "17:00", times[len(times)-1])
	assert.NotContains(t, times, "17:30")
}

func TestSelectDate_AllowedClosedDayResolvesEmpty(t *testing.T) {
	cfg := testConfig()
	cfg.Availability.AllowedDates = domain.NewDateSet(sunday)
	c := newController(t, cfg)

	assert.True(t, c.IsDateSelectable(sunday))
	assert.False(t, c.IsDateSelectable(monday))

	require.NoError(t, c.SelectDate(sunday))
	entry := waitSlots(t, c, sunday)

	assert.Equal(t, slotcache.StatusResolved, entry.Status())
	assert.NotNil(t, entry.Slots)
	assert.Empty(t, entry.Slots)
}

func TestSelectDate_LoaderFailure(t *testing.T) {
	errBackend := errors.New("backend unavailable")
	var calls atomic.Int32
	loader := func(context.Context, types.DateKey) ([]domain.Slot, error) {
		calls.Add(1)
		return nil, errBackend
	}

	var gotErr atomic.Value
	c := newController(t, testConfig(),
		WithLoader(loader),
		WithOnSlotsError(func(_ types.DateKey, err error) { gotErr.Store(err) }),
	)

	require.NoError(t, c.SelectDate(monday))
	entry := waitSlots(t, c, monday)

	assert.False(t, entry.Loading)
	assert.Nil(t, entry.Slots)
	assert.ErrorIs(t, entry.LastError, slotcache.ErrLoaderFailure)
	assert.ErrorIs(t, entry.LastError, errBackend)
	require.NotNil(t, gotErr.Load())
	assert.ErrorIs(t, gotErr.Load().(error), errBackend)

	assert.Equal(t, StateDateSelected, c.State())
	assert.Equal(t, int32(1), calls.Load())
	assert.ErrorIs(t, c.SelectTime(types.MustParseTimeOfDay("10:00")), ErrInvalidSelection)

	// повторная попытка только по явному запросу хоста
	require.NoError(t, c.Refresh())
	waitSlots(t, c, monday)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSelectTime(t *testing.T) {
	var selected []types.TimeOfDay
	c := newController(t, testConfig(),
		WithOnTimeSelect(func(tod types.TimeOfDay, date types.DateKey) {
			assert.Equal(t, monday, date)
			selected = append(selected, tod)
		}),
	)

	assert.ErrorIs(t, c.SelectTime(types.MustParseTimeOfDay("10:00")), ErrInvalidSelection)

	require.NoError(t, c.SelectDate(monday))
	waitSlots(t, c, monday)

	require.NoError(t, c.SelectTime(types.MustParseTimeOfDay("10:00")))
	assert.Equal(t, StateSlotSelected, c.State())

	for _, bad := range []string{"17:30", "10:15", "08:00"} {
		assert.ErrorIs(t, c.SelectTime(types.MustParseTimeOfDay(bad)), ErrInvalidSelection, bad)
	}

	view := c.View()
	require.NotNil(t, view.SelectedTime)
	assert.Equal(t, "10:00", view.SelectedTime.String())
	assert.Len(t, selected, 1)

	at, ok := c.SelectedDateTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC), at)
}

func TestSelectTime_WhileLoading(t *testing.T) {
	loader := newGatedLoader([]domain.Slot{{Time: types.MustParseTimeOfDay("10:00"), DurationMinutes: 60, Available: true}})
	c := newController(t, testConfig(), WithLoader(loader.load))

	require.NoError(t, c.SelectDate(monday))
	assert.True(t, c.Slots(monday).Loading)
	assert.ErrorIs(t, c.SelectTime(types.MustParseTimeOfDay("10:00")), ErrInvalidSelection)

	loader.release(0)
	waitSlots(t, c, monday)
	assert.NoError(t, c.SelectTime(types.MustParseTimeOfDay("10:00")))
}

func TestSelectDate_ChangingDateClearsTime(t *testing.T) {
	c := newController(t, testConfig())

	require.NoError(t, c.SelectDate(monday))
	waitSlots(t, c, monday)
	require.NoError(t, c.SelectTime(types.MustParseTimeOfDay("09:00")))

	require.NoError(t, c.SelectDate(monday.AddDays(1)))
	assert.Equal(t, StateDateSelected, c.State())
	assert.Nil(t, c.View().SelectedTime)
}

func TestClearSelectionAndRefresh(t *testing.T) {
	loader := &countingLoader{}
	c := newController(t, testConfig(), WithLoader(loader.load))

	assert.ErrorIs(t, c.Refresh(), ErrInvalidSelection)

	require.NoError(t, c.SelectDate(monday))
	waitSlots(t, c, monday)
	require.NoError(t, c.Refresh())
	waitSlots(t, c, monday)
	assert.Equal(t, int32(2), loader.calls.Load())

	c.ClearSelection()
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, slotcache.StatusResolved, c.Slots(monday).Status())
}

func TestNavigateMonth_KeepsSelection(t *testing.T) {
	c := newController(t, testConfig())

	require.NoError(t, c.SelectDate(monday))
	c.NavigateMonth(-13)

	view := c.View()
	assert.Equal(t, types.YearMonth{Year: 2025, Month: time.September}, view.ViewedMonth)
	require.NotNil(t, view.SelectedDate)
	assert.Equal(t, monday, *view.SelectedDate)
}

func TestHandleKey_ArrowNavigation(t *testing.T) {
	c := newController(t, testConfig())

	selectedDate := func() types.DateKey {
		view := c.View()
		require.NotNil(t, view.SelectedDate)
		return *view.SelectedDate
	}

	// без выбора стрелки отсчитывают от сегодня; вчера уже прошло
	require.NoError(t, c.HandleKey(KeyArrowLeft))
	assert.Equal(t, StateIdle, c.State())

	require.NoError(t, c.HandleKey(KeyArrowRight))
	assert.Equal(t, today.AddDays(1), selectedDate())

	require.NoError(t, c.HandleKey(KeyArrowRight))
	assert.Equal(t, saturday, selectedDate())

	// воскресенье закрыто, выбор не меняется
	require.NoError(t, c.HandleKey(KeyArrowRight))
	assert.Equal(t, saturday, selectedDate())

	require.NoError(t, c.HandleKey(KeyArrowDown))
	assert.Equal(t, saturday.AddDays(7), selectedDate())
	require.NoError(t, c.HandleKey(KeyArrowDown))
	require.NoError(t, c.HandleKey(KeyArrowDown))

	// переход через границу месяца переключает просматриваемый месяц
	assert.Equal(t, types.MustDateKey(2026, time.November, 7), selectedDate())
	assert.Equal(t, types.YearMonth{Year: 2026, Month: time.November}, c.View().ViewedMonth)

	require.NoError(t, c.HandleKey(KeyArrowUp))
	assert.Equal(t, types.MustDateKey(2026, time.October, 31), selectedDate())
	assert.Equal(t, types.YearMonth{Year: 2026, Month: time.October}, c.View().ViewedMonth)
}

func TestHandleKey_MonthKeys(t *testing.T) {
	c := newController(t, testConfig())

	require.NoError(t, c.HandleKey(KeyPageDown))
	require.NoError(t, c.HandleKey(KeyPageDown))
	assert.Equal(t, types.YearMonth{Year: 2026, Month: time.December}, c.View().ViewedMonth)

	require.NoError(t, c.HandleKey(KeyPageUp))
	assert.Equal(t, types.YearMonth{Year: 2026, Month: time.November}, c.View().ViewedMonth)

	require.NoError(t, c.HandleKey(KeyHome))
	assert.Equal(t, types.YearMonth{Year: 2026, Month: time.October}, c.View().ViewedMonth)

	assert.ErrorIs(t, c.HandleKey(Key("Enter")), ErrUnknownKey)
}

func TestMonthGrid(t *testing.T) {
	c := newController(t, testConfig())
	require.NoError(t, c.SelectDate(monday))

	grid := c.MonthGrid()
	require.Len(t, grid, 42)

	// 1 октября 2026 - четверг, сетка начинается с воскресенья 27 сентября
	assert.Equal(t, types.MustDateKey(2026, time.September, 27), grid[0].Date)
	assert.Equal(t, time.Sunday, grid[0].Date.Weekday())
	assert.Equal(t, "Sunday", grid[0].WeekdayName)
	assert.Equal(t, availability.ReasonOutOfMonth, grid[0].Decision.Reason)

	byDate := make(map[types.DateKey]GridDay, len(grid))
	for _, day := range grid {
		byDate[day.Date] = day
	}

	assert.True(t, byDate[today].IsToday)
	assert.True(t, byDate[today].Decision.Selectable)
	assert.True(t, byDate[monday].IsSelected)
	assert.Equal(t, availability.ReasonNoWorkingHours, byDate[sunday].Decision.Reason)
	assert.Equal(t, availability.ReasonPastDate, byDate[today.AddDays(-1)].Decision.Reason)
}

func TestToday_UsesCalendarLocation(t *testing.T) {
	cfg := testConfig()
	cfg.Location = time.FixedZone("UTC+3", 3*60*60)

	// 22:30 UTC 15 октября - уже 16 октября в UTC+3
	c, err := New(cfg, WithTimeProvider(&fakeTimeProvider{
		now: time.Date(2026, time.October, 15, 22, 30, 0, 0, time.UTC),
	}))
	require.NoError(t, err)

	assert.False(t, c.IsDateSelectable(today))
	assert.True(t, c.IsDateSelectable(today.AddDays(1)))

	require.NoError(t, c.SelectDate(monday))
	waitSlots(t, c, monday)
	require.NoError(t, c.SelectTime(types.MustParseTimeOfDay("09:00")))

	at, ok := c.SelectedDateTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.October, 19, 6, 0, 0, 0, time.UTC), at.UTC())
}

func TestCallbacksMayReenterController(t *testing.T) {
	var c *Controller
	var states []State
	c = newController(t, testConfig(),
		WithOnDateSelect(func(types.DateKey) { states = append(states, c.State()) }),
	)

	require.NoError(t, c.SelectDate(monday))
	waitSlots(t, c, monday)

	assert.Equal(t, []State{StateDateSelected}, states)
}

func TestConfigFromSettings(t *testing.T) {
	holiday := monday
	settings := domain.CalendarSettings{
		WorkingHours:           workingHours(),
		ServiceDurationMinutes: 90,
		SlotIntervalMinutes:    15,
		Locale:                 "ru_RU",
		Location:               time.UTC,
	}

	c := newController(t, ConfigFromSettings(settings, []*domain.DateException{
		{Date: holiday, Kind: domain.ExceptionBlocked},
	}))

	assert.ErrorIs(t, c.SelectDate(holiday), ErrInvalidSelection)
	assert.Equal(t, 90, c.Config().ServiceDurationMinutes)
	assert.Equal(t, "ru_RU", c.Config().Locale)
}

func TestInvalidate_SelectedDateReloads(t *testing.T) {
	loader := &countingLoader{}
	c := newController(t, testConfig(), WithLoader(loader.load))

	require.NoError(t, c.SelectDate(monday))
	waitSlots(t, c, monday)
	require.NoError(t, c.SelectTime(types.MustParseTimeOfDay("10:00")))

	c.Invalidate(monday)
	entry := waitSlots(t, c, monday)

	assert.Equal(t, int32(2), loader.calls.Load())
	assert.Equal(t, []string{"10:00"}, slotTimes(entry.Slots))
	assert.Equal(t, StateDateSelected, c.State())
	assert.Nil(t, c.View().SelectedTime)
}

func TestInvalidate_OtherDatesKeepSelection(t *testing.T) {
	loader := &countingLoader{}
	c := newController(t, testConfig(), WithLoader(loader.load))

	tuesday := monday.AddDays(1)
	require.NoError(t, c.SelectDate(tuesday))
	waitSlots(t, c, tuesday)
	require.NoError(t, c.SelectDate(monday))
	waitSlots(t, c, monday)
	require.NoError(t, c.SelectTime(types.MustParseTimeOfDay("10:00")))

	c.Invalidate(tuesday)

	assert.Equal(t, StateSlotSelected, c.State())
	assert.False(t, c.Slots(tuesday).Loading)
	assert.Nil(t, c.Slots(tuesday).Slots)
	assert.Equal(t, []string{"10:00"}, slotTimes(c.Slots(monday).Slots))
	assert.Equal(t, int32(2), loader.calls.Load())
}

func TestInvalidate_AllDropsStaleInFlightLoad(t *testing.T) {
	stale := []domain.Slot{{Time: types.MustParseTimeOfDay("09:00"), DurationMinutes: 60, Available: true}}
	fresh := []domain.Slot{{Time: types.MustParseTimeOfDay("11:00"), DurationMinutes: 60, Available: true}}
	loader := newGatedLoader(stale, fresh)
	c := newController(t, testConfig(), WithLoader(loader.load))

	require.NoError(t, c.SelectDate(monday))
	require.Eventually(t, func() bool { return loader.callCount() == 1 }, time.Second, time.Millisecond)

	c.Invalidate()
	require.Eventually(t, func() bool { return loader.callCount() == 2 }, time.Second, time.Millisecond)

	loader.release(1)
	loader.release(0)

	entry := waitSlots(t, c, monday)
	assert.Equal(t, []string{"11:00"}, slotTimes(entry.Slots))
}
