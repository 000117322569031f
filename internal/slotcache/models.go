package slotcache

import (
	"context"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// Status состояние записи кэша
type Status int

const (
	// StatusNotRequested слоты еще не запрашивались (или последняя загрузка упала)
	StatusNotRequested Status = iota
	// StatusLoading идет загрузка
	StatusLoading
	// StatusResolved слоты загружены (список может быть пустым)
	StatusResolved
)

// String возвращает название статуса
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusResolved:
		return "resolved"
	default:
		return "not_requested"
	}
}

// Entry снимок записи кэша на дату
type Entry struct {
	Date    types.DateKey
	Slots   []domain.Slot // nil, пока не загружено
	Loading bool
	// LastError ошибка последней зафиксированной загрузки (если была)
	LastError error
}

// Status возвращает состояние записи
func (e Entry) Status() Status {
	switch {
	case e.Loading:
		return StatusLoading
	case e.Slots != nil:
		return StatusResolved
	default:
		return StatusNotRequested
	}
}

// Lookup результат GetOrLoad
type Lookup struct {
	Status Status
	// Slots заполнен только при StatusResolved
	Slots []domain.Slot
	// Pending загрузка, которая сейчас идет по этой дате (только при StatusLoading)
	Pending *Pending
}

// Pending отдельный запрос к загрузчику
type Pending struct {
	date      types.DateKey
	seq       uint64
	done      chan struct{}
	slots     []domain.Slot
	err       error
	committed bool
}

func newPending(date types.DateKey, seq uint64) *Pending {
	return &Pending{date: date, seq: seq, done: make(chan struct{})}
}

// Date возвращает дату запроса
func (p *Pending) Date() types.DateKey {
	return p.date
}

// Seq возвращает порядковый номер запроса в пределах даты
func (p *Pending) Seq() uint64 {
	return p.seq
}

// Done закрывается, когда загрузчик вернул результат
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait ждет завершения загрузчика и возвращает его собственный результат.
// Ошибка загрузчика приходит обернутой в ErrLoaderFailure.
func (p *Pending) Wait(ctx context.Context) ([]domain.Slot, error) {
	select {
	case <-p.done:
		return p.slots, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Committed сообщает, попал ли результат в кэш (false для устаревших запросов).
// Имеет смысл только после закрытия Done.
func (p *Pending) Committed() bool {
	select {
	case <-p.done:
		return p.committed
	default:
		return false
	}
}

func (p *Pending) finish(slots []domain.Slot, err error, committed bool) {
	p.slots = slots
	p.err = err
	p.committed = committed
	close(p.done)
}
