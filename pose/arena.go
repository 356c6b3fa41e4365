package pose

// Arena holds pose records in a slice indexed by slot
// Released slots go to a free list and are reused by the next Alloc
type Arena struct {
	records []Record
	live    []bool
	free    []int
}

// NewArena creates an arena with room for capacity records
func NewArena(capacity int) *Arena {
	return &Arena{
		records: make([]Record, 0, capacity),
		live:    make([]bool, 0, capacity),
	}
}

// Alloc returns a slot whose current and target poses are init
func (a *Arena) Alloc(init Pose) int {
	rec := Record{Current: init, Target: init}
	if n := len(a.free); n > 0 {
		slot := a.free[n-1]
		a.free = a.free[:n-1]
		a.records[slot] = rec
		a.live[slot] = true
		return slot
	}
	a.records = append(a.records, rec)
	a.live = append(a.live, true)
	return len(a.records) - 1
}

// Release returns slot to the free list; releasing a dead or unknown slot is ignored
func (a *Arena) Release(slot int) {
	if slot < 0 || slot >= len(a.records) || !a.live[slot] {
		return
	}
	a.live[slot] = false
	a.free = append(a.free, slot)
}

// At returns the record in slot; the pointer is valid until the next Alloc
func (a *Arena) At(slot int) *Record {
	return &a.records[slot]
}

// Live returns the number of allocated slots
func (a *Arena) Live() int {
	return len(a.records) - len(a.free)
}

// Slots returns the number of slots ever created
func (a *Arena) Slots() int {
	return len(a.records)
}
