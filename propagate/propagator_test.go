package propagate

import (
	"errors"
	"testing"

	"github.com/yigithanyigit/vmaf/feature"
)

func TestPropagator_ReadyFrame(t *testing.T) {
	c := feature.New()
	if err := c.Append("example.feature", 0.28, 0); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := c.Append("example.feature", 0.32, 1); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := c.Append("example.feature", 0.45, 2); err != nil {
		t.Fatalf("Append: %v", err)
	}

	p := NewPropagator(c)

	for idx, want := range []float64{0.28, 0.32, 0.45} {
		var gotName string
		var gotValue float64
		sink := func(userSink any, name string, value float64) {
			gotName = name
			gotValue = value
		}
		if err := p.Propagate(uint32(idx), sink, nil); err != nil {
			t.Fatalf("Propagate(%d): %v", idx, err)
		}
		if gotName != "example.feature" {
			t.Fatalf("sink name = %q, want %q", gotName, "example.feature")
		}
		if gotValue != want {
			t.Fatalf("sink value = %v, want %v", gotValue, want)
		}
	}
}

func TestPropagator_NotReady(t *testing.T) {
	c := feature.New()
	if err := c.Append("a", 1, 0); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := c.Append("b", 2, 1); err != nil {
		t.Fatalf("Append: %v", err)
	}

	p := NewPropagator(c)

	called := false
	sink := func(userSink any, name string, value float64) { called = true }

	err := p.Propagate(0, sink, nil)
	if err == nil {
		t.Fatal("Propagate(0) = nil, want ErrNotReady (feature b has no score at 0)")
	}
	if !errors.Is(err, feature.ErrNotReady) {
		t.Fatalf("Propagate(0) error = %v, want ErrNotReady", err)
	}
	if called {
		t.Fatal("sink was invoked despite incomplete frame")
	}
}

func TestPropagator_MultipleFeaturesOrder(t *testing.T) {
	c := feature.New()
	c.Append("first", 1.0, 0)
	c.Append("second", 2.0, 0)

	p := NewPropagator(c)

	var names []string
	var values []float64
	sink := func(userSink any, name string, value float64) {
		names = append(names, name)
		values = append(values, value)
	}

	if err := p.Propagate(0, sink, nil); err != nil {
		t.Fatalf("Propagate: %v", err)
	}

	if len(names) != 2 {
		t.Fatalf("got %d sink calls, want 2", len(names))
	}
	if names[0] != "first" || names[1] != "second" {
		t.Fatalf("names = %v, want [first second]", names)
	}
	if values[0] != 1.0 || values[1] != 2.0 {
		t.Fatalf("values = %v, want [1 2]", values)
	}
}
