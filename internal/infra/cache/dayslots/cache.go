// Package dayslots кэширует в Redis слоты мастера на день
// (сетка рабочих часов с учетом бронирований, без учета минимального времени до записи).
package dayslots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

const defaultPrefix = "calendar:slots"

type cachedSlot struct {
	Time            types.TimeOfDay `json:"time"`
	DurationMinutes int             `json:"durationMinutes"`
	Available       bool            `json:"available"`
	Reason          string          `json:"reason,omitempty"`
}

// Cache кэш слотов на день поверх Redis
type Cache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	prefix string
}

// New создает кэш. Записи живут ttl, ключи начинаются с prefix.
func New(rdb redis.Cmdable, ttl time.Duration, prefix string) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Cache{rdb: rdb, ttl: ttl, prefix: prefix}
}

// Get возвращает закэшированные слоты. ok=false, если записи нет.
func (c *Cache) Get(ctx context.Context, professionalID int64, date types.DateKey) ([]domain.Slot, bool, error) {
	data, err := c.rdb.Get(ctx, c.key(professionalID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get: %v", ErrCache, err)
	}

	var cached []cachedSlot
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	slots := make([]domain.Slot, len(cached))
	for i, s := range cached {
		slots[i] = domain.Slot{
			Time:            s.Time,
			DurationMinutes: s.DurationMinutes,
			Available:       s.Available,
			Reason:          s.Reason,
		}
	}
	return slots, true, nil
}

// Set сохраняет слоты на день
func (c *Cache) Set(ctx context.Context, professionalID int64, date types.DateKey, slots []domain.Slot) error {
	cached := make([]cachedSlot, len(slots))
	for i, s := range slots {
		cached[i] = cachedSlot{
			Time:            s.Time,
			DurationMinutes: s.DurationMinutes,
			Available:       s.Available,
			Reason:          s.Reason,
		}
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCache, err)
	}

	if err := c.rdb.Set(ctx, c.key(professionalID, date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrCache, err)
	}
	return nil
}

// Invalidate удаляет слоты на день, например после создания бронирования
func (c *Cache) Invalidate(ctx context.Context, professionalID int64, date types.DateKey) error {
	if err := c.rdb.Del(ctx, c.key(professionalID, date)).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrCache, err)
	}
	return nil
}

func (c *Cache) key(professionalID int64, date types.DateKey) string {
	return fmt.Sprintf("%s:%d:%s", c.prefix, professionalID, date)
}
