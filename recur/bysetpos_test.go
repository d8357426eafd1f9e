package recur

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeItems(days ...int) []instance {
	items := make([]instance, len(days))
	for i, d := range days {
		items[i] = instance{year: 1997, month: 0, dayOfMonth: d}
	}
	return items
}

func TestBySetPos(t *testing.T) {
	tests := []struct {
		name      string
		positions []int
		days      []int
		want      []int
	}{
		{"first", []int{1}, []int{5, 12, 19, 26}, []int{5}},
		{"last", []int{-1}, []int{5, 12, 19, 26}, []int{26}},
		{"first and last", []int{1, -1}, []int{5, 12, 19, 26}, []int{5, 26}},
		{"second to last", []int{-2}, []int{5, 12, 19, 26}, []int{19}},
		{"out of range skipped", []int{5, -5}, []int{5, 12, 19, 26}, nil},
		{"duplicate selection collapses", []int{2, 2, -3}, []int{5, 12, 19, 26}, []int{12}},
		{"empty set", []int{1}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bySetPos(tt.positions, makeItems(tt.days...))
			var gotDays []int
			for _, inst := range got {
				gotDays = append(gotDays, inst.dayOfMonth)
			}
			assert.Equal(t, tt.want, gotDays)
		})
	}
}

// Applying the same positional selection twice must be the same as
// applying it once when every selected index survives the first pass;
// the canonical case is a single position, where the second application
// re-selects the sole remaining element.
func TestBySetPos_Idempotent(t *testing.T) {
	items := makeItems(5, 12, 19, 26)
	once := bySetPos([]int{1}, items)
	twice := bySetPos([]int{1}, once)
	assert.Equal(t, once, twice)

	onceLast := bySetPos([]int{-1}, items)
	twiceLast := bySetPos([]int{-1}, onceLast)
	assert.Equal(t, onceLast, twiceLast)
}
