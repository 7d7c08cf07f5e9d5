package layout

// IsOpen reports whether slot i can be selected given the present slots.
// A slot is open when it is present, nothing present is stacked on it, it is not
// under a present apex, and at least one of its sides is free.
func (l *Layout) IsOpen(i int, present Set) bool {
	if !present.Has(i) {
		return false
	}
	for _, j := range l.above[i] {
		if present.Has(j) {
			return false
		}
	}
	if l.hasApex && l.coords[i].Z == l.apexZ-1 {
		for _, j := range l.apex {
			if present.Has(j) {
				return false
			}
		}
	}
	return free(l.left[i], present) || free(l.right[i], present)
}

// IsOpenAt is IsOpen keyed by coordinate. Coordinates outside the layout are never open.
func (l *Layout) IsOpenAt(c Coord, present Set) bool {
	i, ok := l.index[c]
	if !ok {
		return false
	}
	return l.IsOpen(i, present)
}

// Open returns the open slot indices in ascending order.
func (l *Layout) Open(present Set) []int {
	var out []int
	present.Each(func(i int) {
		if l.IsOpen(i, present) {
			out = append(out, i)
		}
	})
	return out
}

// OpenCount counts open slots.
func (l *Layout) OpenCount(present Set) int {
	n := 0
	present.Each(func(i int) {
		if l.IsOpen(i, present) {
			n++
		}
	})
	return n
}

// Neighbors returns the slots checked on each side of slot i.
func (l *Layout) Neighbors(i int) (left, right []Coord) {
	for _, j := range l.left[i] {
		left = append(left, l.coords[j])
	}
	for _, j := range l.right[i] {
		right = append(right, l.coords[j])
	}
	return left, right
}

func free(side []int, present Set) bool {
	for _, j := range side {
		if present.Has(j) {
			return false
		}
	}
	return true
}
