package catalog

import "testing"

func TestClassifier(t *testing.T) {
	older := []int64{100, 200, 300}
	newer := []int64{200, 300, 400}
	c := NewClassifier(2018, older, 2020, newer)

	if got := c.Classify(100); got != 2018 {
		t.Fatalf("unique-to-2018 id classified as %d", got)
	}
	if got := c.Classify(400); got != 2020 {
		t.Fatalf("unique-to-2020 id classified as %d", got)
	}
	// Shared ids and unknown ids both default to the newer vintage.
	if got := c.Classify(200); got != 2020 {
		t.Fatalf("shared id classified as %d", got)
	}
	if got := c.Classify(999); got != 2020 {
		t.Fatalf("unknown id classified as %d", got)
	}
}

func TestClassifierUniqueSetsDisjoint(t *testing.T) {
	older := []int64{1, 2, 3, 4}
	newer := []int64{3, 4, 5, 6}
	c := NewClassifier(2018, older, 2020, newer)

	for _, id := range []int64{1, 2, 3, 4, 5, 6} {
		inOlder := c.UniqueTo(id, 2018)
		inNewer := c.UniqueTo(id, 2020)
		if inOlder && inNewer {
			t.Fatalf("id %d is in both unique sets", id)
		}
	}

	for _, id := range []int64{1, 2} {
		if !c.UniqueTo(id, 2018) {
			t.Fatalf("id %d should be unique to 2018", id)
		}
	}
	for _, id := range []int64{5, 6} {
		if !c.UniqueTo(id, 2020) {
			t.Fatalf("id %d should be unique to 2020", id)
		}
	}
	for _, id := range []int64{3, 4} {
		if c.UniqueTo(id, 2018) || c.UniqueTo(id, 2020) {
			t.Fatalf("shared id %d should be unique to neither", id)
		}
	}
}
