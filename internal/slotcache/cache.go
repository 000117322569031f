// Package slotcache кэширует загруженные слоты по датам и не допускает
// параллельных загрузок одной даты, кроме явного принудительного обновления.
package slotcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/pkg/metrics"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

type entry struct {
	slots    []domain.Slot
	lastErr  error
	latest   uint64   // номер последнего выданного запроса
	inFlight *Pending // последний незавершенный запрос
	last     *Pending // последний выданный запрос, в том числе завершенный
}

// Cache кэш слотов по датам.
// Каждый запрос к загрузчику получает возрастающий номер в пределах даты;
// в кэш попадает только результат запроса с последним номером,
// более ранние результаты отбрасываются при получении.
type Cache struct {
	mu       sync.Mutex
	entries  map[types.DateKey]*entry
	metrics  Metrics
	logger   Logger
	onSettle SettleFunc
}

// Option настройка кэша
type Option func(*Cache)

// WithMetrics подключает метрики
func WithMetrics(m Metrics) Option {
	return func(c *Cache) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithLogger подключает логгер
func WithLogger(l Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOnSettle подписывает на фиксацию результатов загрузки
func WithOnSettle(fn SettleFunc) Option {
	return func(c *Cache) {
		c.onSettle = fn
	}
}

// New создает пустой кэш
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[types.DateKey]*entry),
		metrics: nopMetrics{},
		logger:  nopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrLoad возвращает слоты на дату или запускает загрузку.
//   - дата загружена и force=false: слоты из кэша, загрузчик не вызывается;
//   - по дате идет загрузка и force=false: StatusLoading, второй загрузки нет;
//   - иначе (или force=true): запускается новый запрос, он вытесняет идущий.
func (c *Cache) GetOrLoad(ctx context.Context, date types.DateKey, loader Loader, force bool) Lookup {
	c.mu.Lock()

	e, ok := c.entries[date]
	if !ok {
		e = &entry{}
		c.entries[date] = e
	}

	if !force {
		if e.inFlight != nil {
			c.mu.Unlock()
			c.metrics.SlotCacheLookup(metrics.CacheLoading)
			return Lookup{Status: StatusLoading, Pending: e.inFlight}
		}
		if e.slots != nil {
			slots := cloneSlots(e.slots)
			c.mu.Unlock()
			c.metrics.SlotCacheLookup(metrics.CacheHit)
			return Lookup{Status: StatusResolved, Slots: slots}
		}
	}

	e.latest++
	p := newPending(date, e.latest)
	e.inFlight = p
	e.last = p
	e.slots = nil
	e.lastErr = nil
	c.mu.Unlock()

	if force {
		c.metrics.SlotCacheLookup(metrics.CacheRefresh)
	} else {
		c.metrics.SlotCacheLookup(metrics.CacheMiss)
	}

	go c.run(ctx, p, loader)

	return Lookup{Status: StatusLoading, Pending: p}
}

// run вызывает загрузчик и фиксирует результат, если запрос все еще последний
func (c *Cache) run(ctx context.Context, p *Pending, loader Loader) {
	started := time.Now()

	slots, err := callLoader(ctx, p.date, loader)
	if err != nil {
		err = fmt.Errorf("%w: date=%s: %w", ErrLoaderFailure, p.date, err)
	} else if slots == nil {
		// успешный пустой ответ отличаем от "не запрашивали"
		slots = []domain.Slot{}
	}

	c.mu.Lock()
	e, ok := c.entries[p.date]
	committed := ok && e.latest == p.seq
	if committed {
		e.inFlight = nil
		if err != nil {
			e.lastErr = err
		} else {
			e.slots = cloneSlots(slots)
		}
	}
	c.mu.Unlock()

	// Done закрывается после подписчиков, чтобы ожидающие видели уже отработавшие колбэки
	defer p.finish(slots, err, committed)

	switch {
	case !committed:
		c.logger.Info("slotcache: discarded stale result for date=%s seq=%d", p.date, p.seq)
		c.metrics.SlotLoadFinished(metrics.LoadStale, time.Since(started))
		return
	case err != nil:
		c.logger.Warn("slotcache: %v", err)
		c.metrics.SlotLoadFinished(metrics.LoadFailed, time.Since(started))
	default:
		c.metrics.SlotLoadFinished(metrics.LoadCommitted, time.Since(started))
	}

	if c.onSettle != nil {
		c.onSettle(p.date, cloneSlots(slots), err)
	}
}

// Entry возвращает снимок записи на дату
func (c *Cache) Entry(date types.DateKey) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot(date)
}

// Wait ждет завершения последнего запроса по дате (включая подписчиков WithOnSettle)
// и возвращает запись. Если запрос был вытеснен во время ожидания, ждет новый.
func (c *Cache) Wait(ctx context.Context, date types.DateKey) (Entry, error) {
	for {
		c.mu.Lock()
		var last *Pending
		if e, ok := c.entries[date]; ok {
			last = e.last
		}
		snap := c.snapshot(date)
		c.mu.Unlock()

		if last == nil {
			return snap, nil
		}

		select {
		case <-last.Done():
		case <-ctx.Done():
			return snap, ctx.Err()
		}

		c.mu.Lock()
		e, ok := c.entries[date]
		if !ok || e.last == last {
			snap = c.snapshot(date)
			c.mu.Unlock()
			return snap, nil
		}
		c.mu.Unlock()
	}
}

// Invalidate сбрасывает слоты даты. Результат идущей загрузки будет отброшен:
// номер последнего запроса сохраняется, поэтому старый запрос уже не последний.
func (c *Cache) Invalidate(date types.DateKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[date]; ok {
		e.invalidate()
	}
}

// Reset сбрасывает слоты всех дат, отбрасывая результаты идущих загрузок
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		e.invalidate()
	}
}

// invalidate оставляет от записи только счетчик запросов
func (e *entry) invalidate() {
	e.latest++
	e.slots = nil
	e.lastErr = nil
	e.inFlight = nil
	e.last = nil
}

func (c *Cache) snapshot(date types.DateKey) Entry {
	e, ok := c.entries[date]
	if !ok {
		return Entry{Date: date}
	}
	return Entry{
		Date:      date,
		Slots:     cloneSlots(e.slots),
		Loading:   e.inFlight != nil,
		LastError: e.lastErr,
	}
}

// callLoader превращает панику загрузчика в ошибку
func callLoader(ctx context.Context, date types.DateKey, loader Loader) (slots []domain.Slot, err error) {
	defer func() {
		if r := recover(); r != nil {
			slots, err = nil, fmt.Errorf("loader panic: %v", r)
		}
	}()
	return loader(ctx, date)
}

func cloneSlots(slots []domain.Slot) []domain.Slot {
	if slots == nil {
		return nil
	}
	result := make([]domain.Slot, len(slots))
	copy(result, slots)
	return result
}
