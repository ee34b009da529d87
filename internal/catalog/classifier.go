package catalog

// Classifier resolves which spec year an item id belongs to, using the
// ids unique to each vintage. It is built once, before any bid
// normalization runs, and is read-only afterwards.
type Classifier struct {
	olderYear   int
	newerYear   int
	uniqueOlder map[int64]struct{}
	uniqueNewer map[int64]struct{}
}

// NewClassifier computes the two unique-id sets from the vintage
// id lists. Ids present in both vintages land in neither set.
func NewClassifier(olderYear int, olderIDs []int64, newerYear int, newerIDs []int64) *Classifier {
	older := make(map[int64]struct{}, len(olderIDs))
	for _, id := range olderIDs {
		older[id] = struct{}{}
	}
	newer := make(map[int64]struct{}, len(newerIDs))
	for _, id := range newerIDs {
		newer[id] = struct{}{}
	}

	uniqueOlder := make(map[int64]struct{})
	for id := range older {
		if _, shared := newer[id]; !shared {
			uniqueOlder[id] = struct{}{}
		}
	}
	uniqueNewer := make(map[int64]struct{})
	for id := range newer {
		if _, shared := older[id]; !shared {
			uniqueNewer[id] = struct{}{}
		}
	}

	return &Classifier{
		olderYear:   olderYear,
		newerYear:   newerYear,
		uniqueOlder: uniqueOlder,
		uniqueNewer: uniqueNewer,
	}
}

// Classify returns the older vintage's year only for ids unique to it.
// Everything else, including ids present in both vintages or in
// neither, defaults to the newer year.
func (c *Classifier) Classify(itemID int64) int {
	if _, ok := c.uniqueOlder[itemID]; ok {
		return c.olderYear
	}
	return c.newerYear
}

// UniqueTo reports whether the id is unique to the given vintage.
func (c *Classifier) UniqueTo(itemID int64, specYear int) bool {
	switch specYear {
	case c.olderYear:
		_, ok := c.uniqueOlder[itemID]
		return ok
	case c.newerYear:
		_, ok := c.uniqueNewer[itemID]
		return ok
	default:
		return false
	}
}
