package engine

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/claustra01/yungsbettertfc/internal/ident"
)

// Diagnostics is the process-wide activity record of the processor: one
// first-activation log line and a set of counters. A nil *Diagnostics is
// valid and records nothing.
//
// Thread-safety: safe for concurrent use by any number of workers.
type Diagnostics struct {
	logger    *slog.Logger
	activated atomic.Bool

	replaced  *prometheus.CounterVec
	passed    *prometheus.CounterVec
	entities  prometheus.Counter
	equipment prometheus.Counter
}

// NewDiagnostics creates the counters and registers them on reg. A nil reg
// keeps the counters private to the returned value.
func NewDiagnostics(reg prometheus.Registerer, logger *slog.Logger) (*Diagnostics, error) {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Diagnostics{
		logger: logger,
		replaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ybtfc",
			Name:      "blocks_replaced_total",
			Help:      "Blocks replaced, by rule category.",
		}, []string{"category"}),
		passed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ybtfc",
			Name:      "blocks_passed_total",
			Help:      "Blocks left unchanged, by reason.",
		}, []string{"reason"}),
		entities: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ybtfc",
			Name:      "entities_rewritten_total",
			Help:      "Entities whose equipment was rewritten.",
		}),
		equipment: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ybtfc",
			Name:      "equipment_rewritten_total",
			Help:      "Individual item stacks rewritten on entities.",
		}),
	}
	if reg == nil {
		return d, nil
	}
	for _, c := range []prometheus.Collector{d.replaced, d.passed, d.entities, d.equipment} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// MustNewDiagnostics is NewDiagnostics that panics on registration errors.
func MustNewDiagnostics(reg prometheus.Registerer, logger *slog.Logger) *Diagnostics {
	d, err := NewDiagnostics(reg, logger)
	if err != nil {
		panic(err)
	}
	return d
}

// Activated reports whether a replacement has happened in this process.
func (d *Diagnostics) Activated() bool {
	if d == nil {
		return false
	}
	return d.activated.Load()
}

// firstReplacement logs the first replacement of the process with its
// context. Later calls do nothing.
func (d *Diagnostics) firstReplacement(dec BlockDecision, origin ident.ID) {
	if d == nil || !d.activated.CompareAndSwap(false, true) {
		return
	}
	d.logger.Info("activated block replacement processor",
		"example_in", dec.In.Block.String(),
		"example_out", dec.Out.Block.String(),
		"template", origin.String(),
		"dimension", dec.Dimension.String(),
		"rock", dec.Hints.Rock,
		"soil", dec.Hints.Soil,
		"wood", dec.Hints.Wood,
	)
}

func (d *Diagnostics) block(dec BlockDecision) {
	if d == nil {
		return
	}
	switch dec.Reason {
	case ReasonReplaced:
		d.replaced.WithLabelValues(string(dec.Category)).Inc()
	case ReasonSeagrass:
		d.replaced.WithLabelValues(string(ReasonSeagrass)).Inc()
	default:
		d.passed.WithLabelValues(string(dec.Reason)).Inc()
	}
}

func (d *Diagnostics) entity(dec EntityDecision) {
	if d == nil || len(dec.Changes) == 0 {
		return
	}
	d.entities.Inc()
	d.equipment.Add(float64(len(dec.Changes)))
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Replaced          map[string]int `json:"replaced"`
	Passed            map[string]int `json:"passed"`
	EntitiesRewritten int            `json:"entitiesRewritten"`
	StacksRewritten   int            `json:"stacksRewritten"`
}

// Snapshot reads the current counter values.
func (d *Diagnostics) Snapshot() (Snapshot, error) {
	s := Snapshot{Replaced: map[string]int{}, Passed: map[string]int{}}
	if d == nil {
		return s, nil
	}
	var errs []error
	errs = append(errs, collectVec(d.replaced, "category", s.Replaced))
	errs = append(errs, collectVec(d.passed, "reason", s.Passed))
	n, err := counterValue(d.entities)
	errs = append(errs, err)
	s.EntitiesRewritten = n
	n, err = counterValue(d.equipment)
	errs = append(errs, err)
	s.StacksRewritten = n
	return s, errors.Join(errs...)
}

func collectVec(vec *prometheus.CounterVec, label string, into map[string]int) error {
	ch := make(chan prometheus.Metric)
	go func() {
		vec.Collect(ch)
		close(ch)
	}()
	var firstErr error
	for m := range ch {
		var pb dto.Metric
		if err := m.Write(&pb); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, lp := range pb.GetLabel() {
			if lp.GetName() == label {
				into[lp.GetValue()] = int(pb.GetCounter().GetValue())
			}
		}
	}
	return firstErr
}

func counterValue(c prometheus.Counter) (int, error) {
	var pb dto.Metric
	if err := c.Write(&pb); err != nil {
		return 0, err
	}
	return int(pb.GetCounter().GetValue()), nil
}
