package feature

// Model is a mounted prediction model (a feature-fusion regressor). The
// collector treats models as external collaborators: it never inspects the
// regression math, only the model's declared name, input features, and its
// ability to predict a score for a frame once its inputs are ready.
//
// Predict is invoked by the collector's emission walk when the model's own
// prediction for pictureIndex is not yet available. A correct
// implementation reads whatever input features it needs via c.GetScore
// and, on success, calls c.Append(model.Name(), score, pictureIndex)
// itself — the collector does not read a return value out of Predict, only
// whether it returned nil, and even that is advisory: errors from Predict
// are swallowed by the caller because "not ready yet" and "genuine
// failure" are indistinguishable from the collector's point of view.
type Model interface {
	// Name is the feature name this model's predictions are stored under.
	Name() string
	// Features lists this model's input feature names, in the order
	// metadata callbacks should fire them for a given frame.
	Features() []string
	// Predict computes (and appends) this model's score for pictureIndex.
	Predict(c *Collector, pictureIndex uint32) error
}

// mountedModel tracks per-model emission progress. lowestSeen is the next
// frame index not yet emitted; highestSeen is the highest frame index
// observed for the model's own output feature. Invariant: lowestSeen <=
// highestSeen+1.
type mountedModel struct {
	model       Model
	lowestSeen  uint32
	highestSeen uint32
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
