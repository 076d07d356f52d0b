package projection

import (
	"sync"

	"github.com/angelmondragon/packfinderz-insights/pkg/enums"
)

// Memo stages reported to an Observer.
const (
	StagePrepare = "prepare"
	StageMerge   = "merge"
	StageResult  = "result"
)

// Observer is notified of every memo lookup a View performs.
type Observer interface {
	ObserveMemo(stage string, hit bool)
}

type prepareKey struct {
	payload *Payload
	policy  enums.FilterPolicy
}

type mergeKey struct {
	prepared           *Prepared
	includePredictions bool
}

type resultKey struct {
	payload *Payload
	opts    Options
}

// View memoizes pipeline runs for one caller. Inputs are compared by payload identity and
// option value, so a caller that swaps in a new payload must pass a new pointer. Switching
// only the metric or the windows reuses the validated and merged series.
type View struct {
	pipeline *Pipeline
	observer Observer

	mu       sync.Mutex
	prepared memo[prepareKey, *Prepared]
	merged   memo[mergeKey, []ValidatedPoint]
	result   memo[resultKey, *Result]
}

// ViewOption customizes a View.
type ViewOption func(*View)

// WithObserver reports memo hits and misses to o.
func WithObserver(o Observer) ViewOption {
	return func(v *View) {
		v.observer = o
	}
}

// WithPipeline replaces the default pipeline.
func WithPipeline(p *Pipeline) ViewOption {
	return func(v *View) {
		if p != nil {
			v.pipeline = p
		}
	}
}

// NewView builds an empty View.
func NewView(opts ...ViewOption) *View {
	v := &View{pipeline: defaultPipeline}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Compute returns the result for payload and opts, recomputing only the stages whose
// inputs changed since the previous call.
func (v *View) Compute(payload *Payload, opts Options) (*Result, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	result, hit, err := v.result.lookup(resultKey{payload: payload, opts: opts}, func() (*Result, error) {
		prepared := v.prepare(payload, opts.Policy)
		merged := v.merge(prepared, opts.IncludePredictions)
		return v.pipeline.finish(prepared, merged, opts)
	})
	if err != nil {
		return nil, err
	}
	v.observe(StageResult, hit)
	return result, nil
}

// Reset drops every memoized stage.
func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.prepared.reset()
	v.merged.reset()
	v.result.reset()
}

func (v *View) prepare(payload *Payload, policy enums.FilterPolicy) *Prepared {
	prepared, hit, _ := v.prepared.lookup(prepareKey{payload: payload, policy: policy}, func() (*Prepared, error) {
		return v.pipeline.Prepare(payload, policy), nil
	})
	v.observe(StagePrepare, hit)
	return prepared
}

func (v *View) merge(prepared *Prepared, includePredictions bool) []ValidatedPoint {
	merged, hit, _ := v.merged.lookup(mergeKey{prepared: prepared, includePredictions: includePredictions}, func() ([]ValidatedPoint, error) {
		return Merge(prepared.Historical, prepared.Predictions, includePredictions), nil
	})
	v.observe(StageMerge, hit)
	return merged
}

func (v *View) observe(stage string, hit bool) {
	if v.observer != nil {
		v.observer.ObserveMemo(stage, hit)
	}
}
