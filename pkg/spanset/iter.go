package spanset

// Iter is a cursor over the ids of a SpanSet in a fixed direction.
//
// Each call to SpanSet.IterDesc or SpanSet.IterAsc returns a fresh,
// independent cursor starting from the beginning; cursors never observe
// mutation because SpanSet values are immutable.
type Iter struct {
	spans []Span
	desc  bool

	// Position: spans[i] is the current span, next is the next id to
	// yield within it. exhausted marks the end of iteration.
	i         int
	next      Id
	exhausted bool
}

// IterDesc returns a cursor yielding ids in descending order (largest id
// first). This is the "forward" direction for topologically sorted commit
// sets: the most recent commit comes first.
func (s SpanSet) IterDesc() *Iter {
	it := &Iter{spans: s.spans, desc: true, i: len(s.spans) - 1}
	if it.i < 0 {
		it.exhausted = true
	} else {
		it.next = it.spans[it.i].High
	}
	return it
}

// IterAsc returns a cursor yielding ids in ascending order (smallest id
// first). It is the exact mirror of IterDesc.
func (s SpanSet) IterAsc() *Iter {
	it := &Iter{spans: s.spans}
	if len(s.spans) == 0 {
		it.exhausted = true
	} else {
		it.next = it.spans[0].Low
	}
	return it
}

// Next returns the next id in the cursor's direction.
// The second return value is false once the cursor is exhausted.
func (it *Iter) Next() (Id, bool) {
	if it.exhausted {
		return 0, false
	}
	id := it.next
	if it.desc {
		if id == it.spans[it.i].Low {
			it.i--
			if it.i < 0 {
				it.exhausted = true
			} else {
				it.next = it.spans[it.i].High
			}
		} else {
			it.next = id - 1
		}
	} else {
		if id == it.spans[it.i].High {
			it.i++
			if it.i >= len(it.spans) {
				it.exhausted = true
			} else {
				it.next = it.spans[it.i].Low
			}
		} else {
			it.next = id + 1
		}
	}
	return id, true
}
