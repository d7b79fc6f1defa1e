package ecs

// IntersectEntities returns entity IDs present in both sets.
func IntersectEntities[A, B any](a *SparseSet[A], b *SparseSet[B]) []int {
	if a == nil || b == nil {
		return nil
	}
	// iterate smaller set
	if a.Len() <= b.Len() {
		out := make([]int, 0, a.Len())
		for _, id := range a.denseEntities {
			if b.Has(id) {
				out = append(out, id)
			}
		}
		return out
	}
	out := make([]int, 0, b.Len())
	for _, id := range b.denseEntities {
		if a.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
