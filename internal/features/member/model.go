package member

import "time"

// Role of a user on a shared dashboard. Owners are not rows in
// dashboard_members; ownership lives on the dashboard itself.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
)

func ValidRole(r Role) bool {
	return r == RoleViewer || r == RoleEditor
}

type Member struct {
	DashboardID string    `json:"dashboard_id"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email,omitempty"`
	FullName    string    `json:"full_name,omitempty"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

type InviteRequest struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type UpdateRoleRequest struct {
	Role Role `json:"role"`
}
