package model

import (
	"time"
)

// RecordPayload is the strongly-typed request body for record creation. The
// fields that apply depend on Type; the record grammar rejects payloads whose
// populated fields don't match the type.
type RecordPayload struct {
	Type RecordType `json:"type,omitempty"`
	Name string     `json:"name,omitempty"`
	TTL  int        `json:"ttl,omitempty"`

	// Simple types (A, AAAA, CNAME, NS, MX, TXT, PTR) carry the value directly.
	Value string `json:"value,omitempty"`

	// MX and SRV.
	Priority *int `json:"priority,omitempty"`

	// SRV.
	Weight *int   `json:"weight,omitempty"`
	Port   *int   `json:"port,omitempty"`
	Target string `json:"target,omitempty"`

	// SOA.
	Primary string `json:"primary,omitempty"`
	Admin   string `json:"admin,omitempty"`
	Serial  *int64 `json:"serial,omitempty"`
	Refresh *int64 `json:"refresh,omitempty"`
	Retry   *int64 `json:"retry,omitempty"`
	Expire  *int64 `json:"expire,omitempty"`
	Minimum *int64 `json:"minimum,omitempty"`

	// CAA.
	Flags *int   `json:"flags,omitempty"`
	Tag   string `json:"tag,omitempty"`

	Comment string `json:"comment,omitempty"`
}

// RecordUpdate carries the mutable fields of an existing record. Nil pointers
// leave the stored field untouched; type and name are immutable.
type RecordUpdate struct {
	Value    *string `json:"value,omitempty"`
	TTL      *int    `json:"ttl,omitempty"`
	Priority *int    `json:"priority,omitempty"`
	Comment  *string `json:"comment,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type RecordResponse struct {
	ID        uint       `json:"id"`
	Domain    string     `json:"domain"`
	Type      RecordType `json:"type"`
	Name      string     `json:"name"`
	Value     string     `json:"value"`
	TTL       int        `json:"ttl"`
	Priority  *int       `json:"priority,omitempty"`
	Comment   string     `json:"comment,omitempty"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	// Fields is the stored value parsed back into its structured form for
	// display and edit. Only set on single-record reads.
	Fields *RecordPayload `json:"fields,omitempty"`
}

type ListFilters struct {
	Type      RecordType `json:"type,omitempty"`
	Name      string     `json:"name,omitempty"`
	IsActive  *bool      `json:"isActive,omitempty"`
	Page      int        `json:"page,omitempty"`
	Limit     int        `json:"limit,omitempty"`
	SortBy    string     `json:"sortBy,omitempty"`
	SortOrder string     `json:"sortOrder,omitempty"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Limit int   `json:"limit"`
}

type RecordPage struct {
	Records    []RecordResponse `json:"records"`
	Pagination Pagination       `json:"pagination"`
}

type DomainStats struct {
	TotalRecords    int64            `json:"totalRecords"`
	ActiveRecords   int64            `json:"activeRecords"`
	InactiveRecords int64            `json:"inactiveRecords"`
	RecordsByType   map[string]int64 `json:"recordsByType"`
}

// BulkResult reports the outcome for one item of a bulk operation. Bulk
// operations are not atomic across the batch; each item succeeds or fails on
// its own.
type BulkResult struct {
	ID      uint   `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type BulkUpdateItem struct {
	ID uint `json:"id"`
	RecordUpdate
}

type MemberResponse struct {
	ID       uint             `json:"id"`
	Domain   string           `json:"domain"`
	UserID   uint             `json:"userId"`
	Email    string           `json:"email,omitempty"`
	Role     Role             `json:"role"`
	Status   MembershipStatus `json:"status"`
	IsOwner  bool             `json:"isOwner,omitempty"`
	JoinedAt time.Time        `json:"joinedAt"`
}

type AuditEntryResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"userId"`
	Action     Action    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   uint      `json:"entityId"`
	Domain     string    `json:"domain"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type ZoneResponse struct {
	Domain      string     `json:"domain"`
	OwnerUserID uint       `json:"ownerUserId"`
	Status      ZoneStatus `json:"status"`
	NameServers []string   `json:"nameServers,omitempty"`
}

type SignupRequest struct {
	MerchantName string `json:"merchantName,omitempty"`
	Email        string `json:"email,omitempty"`
	Password     string `json:"password,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type LoginResponse struct {
	Token string `json:"token,omitempty"`
}

type UserResponse struct {
	ID           uint   `json:"id"`
	MerchantName string `json:"merchantName,omitempty"`
	Email        string `json:"email,omitempty"`
}

type InviteRequest struct {
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

type ChangeRoleRequest struct {
	Role Role `json:"role,omitempty"`
}

type BulkUpdateRequest struct {
	Records []BulkUpdateItem `json:"records,omitempty"`
}

type BulkDeleteRequest struct {
	IDs []uint `json:"ids,omitempty"`
}

type ErrorResponse struct {
	Status  int         `json:"status,omitempty"`
	Kind    string      `json:"kind,omitempty"`
	Message string      `json:"msg,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
