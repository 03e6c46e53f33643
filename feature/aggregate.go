package feature

// AggregateEntry is a single per-sequence aggregate scalar.
type AggregateEntry struct {
	Name  string
	Value float64
}

// AggregateTable is an ordered, append-only sequence of AggregateEntry
// values with linear-scan lookup by name. Small-N linear scans are
// intentional: typical runs carry under a few dozen aggregate names, so a
// secondary index would add complexity without a measurable win.
type AggregateTable struct {
	entries []AggregateEntry
}

// append adds name/value, or succeeds as a no-op if name already holds the
// identical value (bit-for-bit), or fails with ErrConflict if name already
// holds a different value.
func (a *AggregateTable) append(name string, value float64) error {
	for i := range a.entries {
		if a.entries[i].Name != name {
			continue
		}
		if a.entries[i].Value == value {
			return nil
		}
		return errConflictAggregate(name, a.entries[i].Value, value)
	}
	a.entries = append(a.entries, AggregateEntry{Name: name, Value: value})
	return nil
}

// get returns the value stored for name, or ErrNotFound if absent.
func (a *AggregateTable) get(name string) (float64, error) {
	for i := range a.entries {
		if a.entries[i].Name == name {
			return a.entries[i].Value, nil
		}
	}
	return 0, errNotFoundName(name)
}
