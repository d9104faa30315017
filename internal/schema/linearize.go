package schema

// linearize computes the C3 linearization of a class: the class
// itself, followed by the merge of its bases' linearizations and the
// base list. C3 keeps local precedence order and monotonicity, which
// is what makes "most-derived overlay wins" well defined for the
// hierarchy walker.
func linearize(c *Class) ([]*Class, error) {
	seqs := make([][]*Class, 0, len(c.bases)+1)
	for _, b := range c.bases {
		seq := make([]*Class, len(b.lin))
		copy(seq, b.lin)
		seqs = append(seqs, seq)
	}
	if len(c.bases) > 0 {
		bases := make([]*Class, len(c.bases))
		copy(bases, c.bases)
		seqs = append(seqs, bases)
	}

	merged, err := mergeC3(seqs)
	if err != nil {
		return nil, &HierarchyError{Class: c.name}
	}
	return append([]*Class{c}, merged...), nil
}

// mergeC3 merges candidate sequences: repeatedly take the head of the
// first sequence that does not appear in the tail of any other
// sequence. If no head qualifies while sequences remain, the
// hierarchy is inconsistent.
func mergeC3(seqs [][]*Class) ([]*Class, error) {
	var out []*Class
	for {
		seqs = dropEmpty(seqs)
		if len(seqs) == 0 {
			return out, nil
		}

		var next *Class
		for _, seq := range seqs {
			head := seq[0]
			if inAnyTail(head, seqs) {
				continue
			}
			next = head
			break
		}
		if next == nil {
			return nil, errInconsistent
		}

		out = append(out, next)
		for i, seq := range seqs {
			if seq[0] == next {
				seqs[i] = seq[1:]
			}
		}
	}
}

func dropEmpty(seqs [][]*Class) [][]*Class {
	kept := seqs[:0]
	for _, s := range seqs {
		if len(s) > 0 {
			kept = append(kept, s)
		}
	}
	return kept
}

func inAnyTail(c *Class, seqs [][]*Class) bool {
	for _, seq := range seqs {
		for _, other := range seq[1:] {
			if other == c {
				return true
			}
		}
	}
	return false
}
