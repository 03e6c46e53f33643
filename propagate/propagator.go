package propagate

import (
	"github.com/cockroachdb/errors"

	"github.com/yigithanyigit/vmaf/feature"
)

// Sink receives one (feature name, value) pair per call during a
// successful Propagate.
type Sink func(userSink any, featureName string, value float64)

// Propagator reads per-frame scores out of a Collector and delivers them
// to a caller-supplied sink once every known feature is ready for a frame.
type Propagator struct {
	collector *feature.Collector
	queue     *FrameQueue
}

// NewPropagator returns a Propagator backed by collector with an empty
// internal FrameQueue.
func NewPropagator(collector *feature.Collector) *Propagator {
	return &Propagator{collector: collector, queue: NewFrameQueue()}
}

// Queue exposes the propagator's owned FrameQueue.
func (p *Propagator) Queue() *FrameQueue { return p.queue }

// Propagate reads the score of every feature currently known to the
// collector at frameIdx. If all of them have a written score, sink is
// invoked once per feature, in the collector's feature-registration order.
// If any feature is missing a score for frameIdx, no sink calls happen and
// Propagate fails with feature.ErrNotReady.
func (p *Propagator) Propagate(frameIdx uint32, sink Sink, userSink any) error {
	names := p.collector.FeatureNames()

	values := make([]float64, len(names))
	for i, name := range names {
		v, err := p.collector.GetScore(name, frameIdx)
		if err != nil {
			return errors.Wrapf(feature.ErrNotReady, "frame %d: feature %q has no score yet", frameIdx, name)
		}
		values[i] = v
	}

	for i, name := range names {
		sink(userSink, name, values[i])
	}
	return nil
}
