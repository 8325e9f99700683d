package engine

// Merge combines a freshly loaded collection with the current in-memory one.
//
// An entity present in both keeps its current version when that version is
// unsynced; otherwise the fresh version wins. Unsynced entities missing from
// fresh are appended in their current order. Synced entities missing from
// fresh are dropped. Merge(fresh, Merge(fresh, current)) equals
// Merge(fresh, current).
func Merge[T any](fresh, current []Entity[T]) []Entity[T] {
	return MergeQueued(fresh, current, nil)
}

// MergeQueued is Merge for a known queue: a current unsynced entity counts
// as unsynced only while queued holds its id, otherwise it is treated as
// synced and loses to fresh. A nil queued means the queue is unknown and
// behaves like Merge.
func MergeQueued[T any](fresh, current []Entity[T], queued map[RecordID]struct{}) []Entity[T] {
	keep := func(e Entity[T]) bool {
		if !e.Unsynced() {
			return false
		}
		if queued == nil {
			return true
		}
		_, ok := queued[e.ID]
		return ok
	}

	byID := make(map[RecordID]Entity[T], len(current))
	for _, e := range current {
		byID[e.ID] = e
	}

	result := make([]Entity[T], 0, len(fresh)+len(current))
	seen := make(map[RecordID]struct{}, len(fresh))
	for _, f := range fresh {
		if _, dup := seen[f.ID]; dup {
			continue
		}
		seen[f.ID] = struct{}{}

		if c, ok := byID[f.ID]; ok && keep(c) {
			result = append(result, c)
			continue
		}
		result = append(result, f)
	}

	for _, c := range current {
		if _, ok := seen[c.ID]; ok || !keep(c) {
			continue
		}
		seen[c.ID] = struct{}{}
		result = append(result, c)
	}

	return result
}
