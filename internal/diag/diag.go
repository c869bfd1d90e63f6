// Package diag delivers advisory diagnostics from the computation core to an
// injectable observer. Diagnostics report clamps and extreme-value conditions;
// they never indicate failure and never interrupt a computation.
package diag

import "go.uber.org/zap"

// Code identifies the kind of diagnostic event.
type Code string

const (
	CodeCraterCapped  Code = "crater_capped"
	CodeRadiusCapped  Code = "radius_capped"
	CodeExtremeEnergy Code = "extreme_energy"
	CodeGlobalThermal Code = "global_thermal"
)

// Event is a single advisory diagnostic emitted during a computation.
type Event struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// Observer receives diagnostic events. Implementations must be safe for
// concurrent use; the core may emit from any goroutine running a simulation.
type Observer interface {
	Observe(Event)
}

// ZapObserver logs every event at warn level through the global zap logger.
type ZapObserver struct {
	log *zap.Logger
}

// NewZapObserver returns an observer backed by the global logger.
func NewZapObserver() *ZapObserver {
	return &ZapObserver{log: zap.L().With(zap.String("component", "diag"))}
}

// Observe implements Observer.
func (o *ZapObserver) Observe(ev Event) {
	fields := make([]zap.Field, 0, len(ev.Fields)+1)
	fields = append(fields, zap.String("code", string(ev.Code)))
	for k, v := range ev.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	o.log.Warn(ev.Message, fields...)
}

// NopObserver discards all events.
type NopObserver struct{}

// Observe implements Observer.
func (NopObserver) Observe(Event) {}

// FuncObserver adapts a function to the Observer interface.
type FuncObserver func(Event)

// Observe implements Observer.
func (f FuncObserver) Observe(ev Event) { f(ev) }

// Collector accumulates events in order. It is intended for single-request
// use (one collector per simulation) and is not safe for concurrent writes.
type Collector struct {
	events []Event
}

// Observe implements Observer.
func (c *Collector) Observe(ev Event) {
	c.events = append(c.events, ev)
}

// Events returns the accumulated events in emission order.
func (c *Collector) Events() []Event {
	return c.events
}

// Codes returns just the codes of the accumulated events, in order.
func (c *Collector) Codes() []Code {
	codes := make([]Code, len(c.events))
	for i, ev := range c.events {
		codes[i] = ev.Code
	}
	return codes
}
