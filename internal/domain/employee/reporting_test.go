package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWouldCreateCycle(t *testing.T) {
	// 3 -> 2 -> 1 (1 has no manager)
	managers := map[int64]int64{3: 2, 2: 1}

	tests := []struct {
		name       string
		employeeID int64
		managerID  int64
		want       bool
	}{
		{"self management", 1, 1, true},
		{"direct cycle", 2, 3, true},
		{"transitive cycle", 1, 3, true},
		{"valid new chain", 4, 3, false},
		{"valid reassignment", 3, 1, false},
		{"manager outside tree", 5, 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WouldCreateCycle(managers, tt.employeeID, tt.managerID)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWouldCreateCycleCorruptChain(t *testing.T) {
	// 2 <-> 3 is already cyclic; assigning into it must be refused even
	// though employee 9 is not part of the loop.
	managers := map[int64]int64{2: 3, 3: 2}
	assert.True(t, WouldCreateCycle(managers, 9, 2))
}

func TestFullName(t *testing.T) {
	e := Employee{FirstName: "Test", LastName: "Employee"}
	assert.Equal(t, "Test Employee", e.FullName())

	single := Employee{FirstName: "Admin"}
	assert.Equal(t, "Admin", single.FullName())
}
