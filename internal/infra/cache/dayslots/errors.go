package dayslots

import "errors"

var (
	// ErrCache возвращается при ошибках обращения к Redis
	ErrCache = errors.New("dayslots.cache: redis error")

	// ErrDecode возвращается, если закэшированное значение не удалось разобрать
	ErrDecode = errors.New("dayslots.cache: failed to decode value")
)
