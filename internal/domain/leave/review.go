package leave

import "github.com/peoplecore/attendance-backend-go/internal/domain/employee"

// CanReview decides whether the actor may approve or reject a request
// owned by ownerID. Admins review anyone; managers only their direct
// reports (ownerManagerID is 0 when the owner has no manager).
func CanReview(actorRole employee.Role, actorID, ownerID, ownerManagerID int64) bool {
	switch actorRole {
	case employee.RoleAdmin:
		return true
	case employee.RoleManager:
		return ownerManagerID != 0 && actorID == ownerManagerID
	default:
		return false
	}
}

// CanView mirrors the attendance visibility tiers: own, direct reports
// plus own, or everything for admins.
func CanView(actorRole employee.Role, actorID, ownerID, ownerManagerID int64) bool {
	if actorRole == employee.RoleAdmin {
		return true
	}
	if actorID == ownerID {
		return true
	}
	return actorRole == employee.RoleManager && ownerManagerID != 0 && actorID == ownerManagerID
}

// CanDelete allows the owner or an admin to withdraw a request. The
// pending-only guard is enforced at the write.
func CanDelete(actorRole employee.Role, actorID, ownerID int64) bool {
	return actorID == ownerID || actorRole == employee.RoleAdmin
}
