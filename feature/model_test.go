package feature

import "testing"

// fakeModel is a minimal Model used to exercise the emission walk. It
// predicts by summing its declared input features for a frame.
type fakeModel struct {
	name     string
	features []string
}

func (m *fakeModel) Name() string       { return m.name }
func (m *fakeModel) Features() []string { return m.features }

func (m *fakeModel) Predict(c *Collector, pictureIndex uint32) error {
	var sum float64
	for _, f := range m.features {
		v, err := c.GetScore(f, pictureIndex)
		if err != nil {
			return err
		}
		sum += v
	}
	return c.Append(m.name, sum, pictureIndex)
}

func TestMaxU32(t *testing.T) {
	if maxU32(3, 5) != 5 {
		t.Fatalf("maxU32(3,5) = %d, want 5", maxU32(3, 5))
	}
	if maxU32(7, 2) != 7 {
		t.Fatalf("maxU32(7,2) = %d, want 7", maxU32(7, 2))
	}
}
