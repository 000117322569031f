package slotcache

import "errors"

// ErrLoaderFailure оборачивает ошибку загрузчика. Кэш не повторяет загрузку сам:
// запись остается незагруженной, решение о повторе принимает вызывающий.
var ErrLoaderFailure = errors.New("slotcache: loader failed")
