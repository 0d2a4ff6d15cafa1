package models

import (
	"time"
)

// ApplicationType distinguishes the two award tracks
type ApplicationType string

const (
	TypeCitation     ApplicationType = "citation"
	TypeAppreciation ApplicationType = "appreciation"
)

// StatusFlag is the primary pipeline status of an application
type StatusFlag string

const (
	StatusPending             StatusFlag = "pending"
	StatusInReview            StatusFlag = "in_review"
	StatusApproved            StatusFlag = "approved"
	StatusRejected            StatusFlag = "rejected"
	StatusShortlistedApproved StatusFlag = "shortlisted_approved"
	StatusWithdrawed          StatusFlag = "withdrawed"
)

// Role identifies an actor in the approval hierarchy or one of the side lanes
type Role string

const (
	RoleUnit     Role = "unit"
	RoleBrigade  Role = "brigade"
	RoleDivision Role = "division"
	RoleCorps    Role = "corps"
	RoleCommand  Role = "command"
	RoleCW2MO    Role = "cw2_mo"
	RoleCW2OL    Role = "cw2_ol"
)

// ClarificationStatus tracks the lifecycle of a reviewer-raised clarification
type ClarificationStatus string

const (
	ClarificationNone      ClarificationStatus = "none"
	ClarificationRaised    ClarificationStatus = "raised"
	ClarificationClarified ClarificationStatus = "clarified"
	ClarificationRejected  ClarificationStatus = "rejected"
)

// WithdrawStatus tracks the withdrawal sub-state-machine
type WithdrawStatus string

const (
	WithdrawPending  WithdrawStatus = "pending"
	WithdrawApproved WithdrawStatus = "approved"
	WithdrawRejected WithdrawStatus = "rejected"
)

// ClarificationDetails holds the clarification thread attached to a parameter.
// A rejected clarification excludes the parameter from every total.
type ClarificationDetails struct {
	Status       ClarificationStatus `json:"clarification_status" db:"clarification_status"`
	RaisedByRole Role                `json:"raised_by_role,omitempty" db:"raised_by_role"`
	Message      string              `json:"message,omitempty" db:"message"`
	Response     string              `json:"response,omitempty" db:"response"`
	RaisedAt     *time.Time          `json:"raised_at,omitempty" db:"raised_at"`
	ResolvedAt   *time.Time          `json:"resolved_at,omitempty" db:"resolved_at"`
}

// UploadRef is a reference to a supporting document attached to a parameter
type UploadRef struct {
	ID          string    `json:"id" db:"id"`
	ParameterID uint      `json:"parameter_id" db:"parameter_id"`
	FileName    string    `json:"file_name" db:"file_name"`
	UploadedAt  time.Time `json:"uploaded_at" db:"uploaded_at"`
}

// Parameter is one scored line item of an application.
// Name == "no" is a sentinel: the display label is taken from the deepest
// non-empty category level instead.
type Parameter struct {
	ID             uint                  `json:"id" db:"id"`
	ApplicationID  uint                  `json:"application_id" db:"application_id"`
	Name           string                `json:"name" db:"name"`
	Category       string                `json:"category,omitempty" db:"category"`
	Subcategory    string                `json:"subcategory,omitempty" db:"subcategory"`
	Subsubcategory string                `json:"subsubcategory,omitempty" db:"subsubcategory"`
	Count          float64               `json:"count" db:"count"`
	Marks          float64               `json:"marks" db:"marks"`
	Negative       bool                  `json:"negative" db:"negative"`
	ApprovedMarks  *float64              `json:"approved_marks,omitempty" db:"approved_marks"`
	SortOrder      int                   `json:"sort_order" db:"sort_order"`
	Uploads        []UploadRef           `json:"upload,omitempty" db:"-"` // Loaded separately
	Clarification  *ClarificationDetails `json:"clarification_details,omitempty" db:"-"`
	CreatedAt      time.Time             `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at" db:"updated_at"`
}

// GraceMark is a role's discretionary marks on top of parameter-derived marks
type GraceMark struct {
	ApplicationID uint      `json:"application_id" db:"application_id"`
	Role          Role      `json:"role" db:"role"`
	Marks         float64   `json:"marks" db:"marks"`
	AddedBy       uint      `json:"added_by" db:"added_by"`
	AddedAt       time.Time `json:"added_at" db:"added_at"`
}

// Priority is a role-assigned ranking value used to order shortlisted applications
type Priority struct {
	ApplicationID uint      `json:"application_id" db:"application_id"`
	Role          Role      `json:"role" db:"role"`
	Priority      int       `json:"priority" db:"priority"`
	AddedAt       time.Time `json:"added_at" db:"added_at"`
}

// MoOl holds the Medical Officer / Operational Leader side-lane approvals
type MoOl struct {
	IsMoApproved bool       `json:"is_mo_approved" db:"is_mo_approved"`
	MoApprovedAt *time.Time `json:"mo_approved_at,omitempty" db:"mo_approved_at"`
	IsOlApproved bool       `json:"is_ol_approved" db:"is_ol_approved"`
	OlApprovedAt *time.Time `json:"ol_approved_at,omitempty" db:"ol_approved_at"`
}

// Finalization marks the terminal CW2-stage state
type Finalization struct {
	IsFinalized bool       `json:"isfinalized" db:"is_finalized"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty" db:"finalized_at"`
}

// Withdrawal holds the withdrawal request lane.
// Once Status leaves "pending" it is terminal.
type Withdrawal struct {
	IsRequested    bool           `json:"is_withdraw_requested" db:"is_requested"`
	RequestedBy    Role           `json:"withdraw_requested_by,omitempty" db:"requested_by"`
	Status         WithdrawStatus `json:"withdraw_status,omitempty" db:"status"`
	RequestedAt    *time.Time     `json:"withdraw_requested_at,omitempty" db:"requested_at"`
	ApprovedByRole *Role          `json:"withdraw_approved_by_role,omitempty" db:"approved_by_role"`
	ApprovedAt     *time.Time     `json:"withdraw_approved_at,omitempty" db:"approved_at"`
}

// Application is one citation/appreciation submission
type Application struct {
	ID         uint            `json:"id" db:"id"`
	Type       ApplicationType `json:"type" db:"type"`
	UnitID     uint            `json:"unit_id" db:"unit_id"`
	DateInit   time.Time       `json:"date_init" db:"date_init"`
	StatusFlag StatusFlag      `json:"status_flag" db:"status_flag"`
	LastDate   *time.Time      `json:"last_date,omitempty" db:"last_date"`

	Parameters   []Parameter        `json:"parameters" db:"-"`  // Loaded separately, insertion order
	GraceMarks   map[Role]GraceMark `json:"grace_marks" db:"-"` // Loaded separately
	Priorities   map[Role]Priority  `json:"priority" db:"-"`    // Loaded separately
	MoOl         MoOl               `json:"mo_ol" db:"-"`
	Finalization Finalization       `json:"finalization" db:"-"`
	Withdrawal   *Withdrawal        `json:"withdraw,omitempty" db:"-"`

	LastApprovedByRole          *Role `json:"last_approved_by_role,omitempty" db:"last_approved_by_role"`
	LastRejectedByRole          *Role `json:"last_rejected_by_role,omitempty" db:"last_rejected_by_role"`
	LastShortlistedApprovedRole *Role `json:"last_shortlisted_approved_role,omitempty" db:"last_shortlisted_approved_role"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ApplicationWithDetails extends Application with unit info for list views
type ApplicationWithDetails struct {
	Application
	UnitName string `json:"unit_name,omitempty"`
}

// User represents a user in the system
type User struct {
	ID           uint      `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Role         Role      `json:"role" db:"role"`
	UnitID       *uint     `json:"unit_id,omitempty" db:"unit_id"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Session represents an issued token pair member
type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    uint      `json:"user_id" db:"user_id"`
	JTI       string    `json:"jti" db:"jti"`
	TokenType string    `json:"token_type" db:"token_type"` // "access" or "refresh"
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	IPAddress string    `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent string    `json:"user_agent,omitempty" db:"user_agent"`
}

// AuditLog represents an audit log entry
type AuditLog struct {
	ID        uint      `json:"id" db:"id"`
	UserID    *uint     `json:"user_id,omitempty" db:"user_id"`
	UserEmail *string   `json:"user_email,omitempty" db:"user_email"`
	Action    string    `json:"action" db:"action"`
	Resource  string    `json:"resource" db:"resource"`
	Details   string    `json:"details,omitempty" db:"details"`
	IPAddress string    `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent string    `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BulkApproveResult reports the per-group outcome of a bulk approval
type BulkApproveResult struct {
	Type           ApplicationType `json:"type"`
	ApplicationIDs []uint          `json:"application_ids"`
	Succeeded      bool            `json:"succeeded"`
	Error          string          `json:"error,omitempty"`
}
