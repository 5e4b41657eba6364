package employee

// WouldCreateCycle reports whether assigning newManagerID as employeeID's
// manager would close a loop in the organization tree. managers is the
// id -> manager-id adjacency; employees without a manager are absent.
//
// The walk is bounded by the adjacency size, so a pre-existing corrupt
// cycle that does not involve employeeID still terminates.
func WouldCreateCycle(managers map[int64]int64, employeeID, newManagerID int64) bool {
	if employeeID == newManagerID {
		return true
	}

	current := newManagerID
	for steps := 0; steps <= len(managers); steps++ {
		next, ok := managers[current]
		if !ok {
			return false
		}
		if next == employeeID {
			return true
		}
		current = next
	}

	// Walk exceeded the chain bound: the tree above newManagerID is
	// already cyclic. Refuse the assignment.
	return true
}
