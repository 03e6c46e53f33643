package feature

import "time"

// Logger is the minimal logging contract the Collector depends on. It is
// satisfied by *internal/vlog.Logger (the default) or by any caller-supplied
// adapter; the collector never imports a concrete logging package directly.
type Logger interface {
	Warn(msg string, args ...any)
}

// Observer is an optional hook for self-observability; the telemetry
// package implements it on top of Prometheus. The collector never imports
// Prometheus itself, only this interface.
type Observer interface {
	OnAppend(feature string)
	OnConflict(feature string)
	OnEmit(model string)
	ObserveEmissionLatency(model string, d time.Duration)
}

type noopObserver struct{}

func (noopObserver) OnAppend(string)                             {}
func (noopObserver) OnConflict(string)                           {}
func (noopObserver) OnEmit(string)                                {}
func (noopObserver) ObserveEmissionLatency(string, time.Duration) {}
