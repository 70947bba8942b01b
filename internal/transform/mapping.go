package transform

// StepMap records the region one step replaced: OldSize positions starting
// at Start became NewSize positions.
type StepMap struct {
	Start   int
	OldSize int
	NewSize int
}

// Map moves pos across the step. For a pure insertion, assoc decides which
// side a position at Start sticks to: negative keeps it before the inserted
// content, anything else moves it after. When the step replaced a range,
// its edges map outward whatever assoc says: Start stays before the new
// content and Start+OldSize lands after it. assoc only picks the side for
// positions strictly inside the replaced range.
func (m StepMap) Map(pos, assoc int) int {
	end := m.Start + m.OldSize
	switch {
	case pos < m.Start:
		return pos
	case pos > end:
		return pos + m.NewSize - m.OldSize
	}

	side := assoc
	if m.OldSize > 0 {
		switch pos {
		case m.Start:
			side = -1
		case end:
			side = 1
		}
	}
	if side < 0 {
		return m.Start
	}
	return m.Start + m.NewSize
}

// Mapping is an ordered list of step maps applied left to right.
type Mapping struct {
	maps []StepMap
}

// Append adds m after the existing maps.
func (mp *Mapping) Append(m StepMap) {
	mp.maps = append(mp.maps, m)
}

// Maps returns the step maps in application order.
func (mp *Mapping) Maps() []StepMap {
	return mp.maps
}

// Map moves pos across every step in order.
func (mp *Mapping) Map(pos, assoc int) int {
	for _, m := range mp.maps {
		pos = m.Map(pos, assoc)
	}
	return pos
}
