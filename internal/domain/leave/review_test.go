package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDaysBetweenInclusive(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"2026-01-05", "2026-01-05", 1},
		{"2026-01-05", "2026-01-07", 3},
		{"2026-03-01", "2026-03-03", 3},
		{"2026-02-27", "2026-03-02", 4}, // across month boundary
		{"2026-12-31", "2027-01-01", 2}, // across year boundary
	}
	for _, tt := range tests {
		got := DaysBetweenInclusive(date(tt.start), date(tt.end))
		assert.Equal(t, tt.want, got, "%s..%s", tt.start, tt.end)
	}
}

func TestBalanceApply(t *testing.T) {
	b := NewDefaultBalance(7, 2026)
	assert.Equal(t, 17, b.TotalDays)
	assert.Equal(t, 17, b.Remaining)

	b.Apply(3)
	assert.Equal(t, 3, b.UsedDays)
	assert.Equal(t, 14, b.Remaining)

	b.Apply(5)
	assert.Equal(t, 8, b.UsedDays)
	assert.Equal(t, 9, b.Remaining)
}

func TestBalanceApplyRecomputesExactly(t *testing.T) {
	// remaining = total - used for any prior used value.
	for used := 0; used <= 20; used++ {
		b := LeaveBalance{TotalDays: 17, UsedDays: used, Remaining: 17 - used}
		b.Apply(2)
		assert.Equal(t, 17-(used+2), b.Remaining, "used=%d", used)
	}
}

func TestCanReview(t *testing.T) {
	const (
		owner   int64 = 10
		manager int64 = 20
	)

	assert.True(t, CanReview(employee.RoleAdmin, 1, owner, manager))
	assert.True(t, CanReview(employee.RoleManager, manager, owner, manager))
	assert.False(t, CanReview(employee.RoleManager, 30, owner, manager), "unrelated manager")
	assert.False(t, CanReview(employee.RoleEmployee, owner, owner, manager), "owner cannot self-review")
	assert.False(t, CanReview(employee.RoleManager, 20, owner, 0), "owner without manager")
}

func TestCanDelete(t *testing.T) {
	assert.True(t, CanDelete(employee.RoleEmployee, 10, 10))
	assert.True(t, CanDelete(employee.RoleAdmin, 1, 10))
	assert.False(t, CanDelete(employee.RoleEmployee, 11, 10))
	assert.False(t, CanDelete(employee.RoleManager, 20, 10), "manager cannot delete reports' requests")
}

func TestCreateLeaveRequestValidate(t *testing.T) {
	ok := CreateLeaveRequestRequest{StartDate: "2026-03-01", EndDate: "2026-03-03", Reason: "family"}
	assert.NoError(t, ok.Validate())

	sameDay := CreateLeaveRequestRequest{StartDate: "2026-03-01", EndDate: "2026-03-01", Reason: "appointment"}
	assert.NoError(t, sameDay.Validate())

	inverted := CreateLeaveRequestRequest{StartDate: "2026-03-05", EndDate: "2026-03-01", Reason: "x"}
	assert.Error(t, inverted.Validate())

	badDate := CreateLeaveRequestRequest{StartDate: "03/01/2026", EndDate: "2026-03-01", Reason: "x"}
	assert.Error(t, badDate.Validate())

	noReason := CreateLeaveRequestRequest{StartDate: "2026-03-01", EndDate: "2026-03-02", Reason: "  "}
	assert.Error(t, noReason.Validate())
}
