package attendance

import "github.com/peoplecore/attendance-backend-go/internal/domain/employee"

// Transition names an operation on the attendance approval workflow.
type Transition string

const (
	TransitionClockIn       Transition = "clock_in"
	TransitionClockOut      Transition = "clock_out"
	TransitionConfirm       Transition = "confirm"
	TransitionManagerVerify Transition = "manager_verify"
	TransitionAdminApprove  Transition = "admin_approve"
)

// InitialApprovalStatus picks the first stage for a fresh record.
// Managers skip peer review, so their records start at Pending_Admin.
func InitialApprovalStatus(ownerRole employee.Role) ApprovalStatus {
	if ownerRole == employee.RoleManager {
		return StatusPendingAdmin
	}
	return StatusPendingManager
}

// CanTransition decides whether the actor is authorized to run the given
// transition on a record owned by ownerID. ownerManagerID is the record
// owner's direct manager, or 0 when they have none. State guards (already
// confirmed, wrong approval stage) are enforced separately, inside the
// same transaction as the write.
func CanTransition(actorRole employee.Role, actorID, ownerID, ownerManagerID int64, transition Transition) bool {
	switch transition {
	case TransitionClockIn, TransitionClockOut:
		return actorID == ownerID
	case TransitionConfirm:
		return actorID == ownerID || actorRole == employee.RoleAdmin
	case TransitionManagerVerify:
		return actorRole == employee.RoleManager && ownerManagerID != 0 && actorID == ownerManagerID
	case TransitionAdminApprove:
		return actorRole == employee.RoleAdmin
	default:
		return false
	}
}

// CanView decides record visibility: employees see their own records,
// managers additionally see direct reports' (one level), admins see all.
func CanView(actorRole employee.Role, actorID, ownerID, ownerManagerID int64) bool {
	if actorRole == employee.RoleAdmin {
		return true
	}
	if actorID == ownerID {
		return true
	}
	return actorRole == employee.RoleManager && ownerManagerID != 0 && actorID == ownerManagerID
}
