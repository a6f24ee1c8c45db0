package auth

import "floodFriend/models"

// Action names an operation subject to authorization.
type Action string

const (
	ActionReadAlerts    Action = "alerts:read"
	ActionReadResources Action = "resources:read"
	ActionReadMap       Action = "map:read"
	ActionReadAnalysis  Action = "analysis:read"

	ActionCreateAlert    Action = "alerts:create"
	ActionDeleteAlert    Action = "alerts:delete"
	ActionCreateResource Action = "resources:create"
	ActionDeleteResource Action = "resources:delete"

	ActionListUsers   Action = "users:list"
	ActionPromoteUser Action = "users:promote"

	ActionCreateRequest       Action = "requests:create"
	ActionUpdateRequestStatus Action = "requests:update_status"
	ActionListOwnRequests     Action = "requests:list_own"
	ActionListAllRequests     Action = "requests:list_all"
)

// Can reports whether actor may perform action. A nil actor is anonymous.
// Reads of the public registers are open to everyone; every mutation needs
// an account, and most need the admin role.
func Can(actor *models.User, action Action) bool {
	switch action {
	case ActionReadAlerts, ActionReadResources, ActionReadMap, ActionReadAnalysis:
		return true
	case ActionCreateAlert, ActionDeleteAlert,
		ActionCreateResource, ActionDeleteResource,
		ActionListUsers, ActionPromoteUser,
		ActionUpdateRequestStatus, ActionListAllRequests:
		return actor.IsAdmin()
	case ActionCreateRequest:
		// exactly "user": admins and viewers cannot file requests
		return actor != nil && actor.Role == models.RoleUser
	case ActionListOwnRequests:
		return actor != nil
	}
	return false
}

// CanViewRequest reports whether actor may see req: admins see all, others only their own.
func CanViewRequest(actor *models.User, req *models.AidRequest) bool {
	if actor == nil || req == nil {
		return false
	}
	return actor.IsAdmin() || req.RequesterID == actor.ID
}
