package trace

import (
	"fmt"
	"sync"

	"github.com/claustra01/yungsbettertfc/internal/engine"
)

// Kind discriminates records.
type Kind string

const (
	KindBlock  Kind = "block"
	KindEntity Kind = "entity"
)

// Record is one decision of a run. Exactly one of Block and Entity is set.
type Record struct {
	Seq    int64                  `json:"seq"`
	Kind   Kind                   `json:"kind"`
	Block  *engine.BlockDecision  `json:"block,omitempty"`
	Entity *engine.EntityDecision `json:"entity,omitempty"`
}

// Validate checks that the record carries the payload its kind names.
func (r Record) Validate() error {
	switch r.Kind {
	case KindBlock:
		if r.Block == nil || r.Entity != nil {
			return fmt.Errorf("record %d: block record needs exactly a block payload", r.Seq)
		}
	case KindEntity:
		if r.Entity == nil || r.Block != nil {
			return fmt.Errorf("record %d: entity record needs exactly an entity payload", r.Seq)
		}
	default:
		return fmt.Errorf("record %d: unknown kind %q", r.Seq, r.Kind)
	}
	return nil
}

// MarshalLines renders each record as one canonical JSON line.
func MarshalLines(records []Record) ([][]byte, error) {
	lines := make([][]byte, 0, len(records))
	for _, r := range records {
		line, err := Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", r.Seq, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Recorder collects the decisions of a worker. Sequence numbers start at 1
// and increase by one per kept record.
//
// Thread-safety: safe for concurrent use.
type Recorder struct {
	mu          sync.Mutex
	seq         int64
	records     []Record
	changedOnly bool
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// ChangedOnly drops block decisions that left the block as it was and
// entity decisions with no rewritten stacks.
func ChangedOnly() RecorderOption {
	return func(r *Recorder) {
		r.changedOnly = true
	}
}

// NewRecorder returns an empty recorder.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WorkerOptions wires the recorder into an engine worker.
func (r *Recorder) WorkerOptions() []engine.WorkerOption {
	return []engine.WorkerOption{
		engine.WithBlockTrace(r.Block),
		engine.WithEntityTrace(r.Entity),
	}
}

// Block records a block decision.
func (r *Recorder) Block(d engine.BlockDecision) {
	if r.changedOnly && !d.Reason.Changed() {
		return
	}
	r.append(Record{Kind: KindBlock, Block: &d})
}

// Entity records an entity decision.
func (r *Recorder) Entity(d engine.EntityDecision) {
	if r.changedOnly && len(d.Changes) == 0 {
		return
	}
	r.append(Record{Kind: KindEntity, Entity: &d})
}

func (r *Recorder) append(rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	rec.Seq = r.seq
	r.records = append(r.records, rec)
}

// Records returns a copy of the recorded decisions in order.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of records.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Reset drops all records and restarts the sequence.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq = 0
	r.records = nil
}
