package nameset

// The three binary operations dispatch on operand representation. When both
// operands are DagSets whose Map handles are the identical *idmap.IdMap
// instance, the operation is computed as span-set algebra and wrapped in a
// new DagSet sharing that map. Structural equality of two maps is not
// enough: maps built independently do not share an id space, so they fall
// back to the generic combination node like every other operand mix.

// Intersection returns the set of names present in both a and b.
func Intersection(a, b Set) Set {
	if da, db, ok := sharedIdSpace(a, b); ok {
		fast := NewDagSet(da.spans.Intersection(db.spans), da.m)
		crossCheck(fast, &metaSet{op: opAnd, lhs: a, rhs: b})
		return fast
	}
	return &metaSet{op: opAnd, lhs: a, rhs: b}
}

// Union returns the set of names present in either a or b.
func Union(a, b Set) Set {
	if da, db, ok := sharedIdSpace(a, b); ok {
		fast := NewDagSet(da.spans.Union(db.spans), da.m)
		crossCheck(fast, &metaSet{op: opOr, lhs: a, rhs: b})
		return fast
	}
	return &metaSet{op: opOr, lhs: a, rhs: b}
}

// Difference returns the set of names present in a but not in b.
func Difference(a, b Set) Set {
	if da, db, ok := sharedIdSpace(a, b); ok {
		fast := NewDagSet(da.spans.Difference(db.spans), da.m)
		crossCheck(fast, &metaSet{op: opDifference, lhs: a, rhs: b})
		return fast
	}
	return &metaSet{op: opDifference, lhs: a, rhs: b}
}

// sharedIdSpace reports whether both sets are DagSets backed by the same id
// map instance. This downcast is the one place representation identity
// leaks through the Set abstraction.
func sharedIdSpace(a, b Set) (*DagSet, *DagSet, bool) {
	da, ok := a.(*DagSet)
	if !ok {
		return nil, nil, false
	}
	db, ok := b.(*DagSet)
	if !ok || da.m != db.m {
		return nil, nil, false
	}
	return da, db, true
}
