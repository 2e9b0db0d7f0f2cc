package model

import (
	"fmt"
)

const (
	RecordTypeA     RecordType = "A"
	RecordTypeAAAA  RecordType = "AAAA"
	RecordTypeCname RecordType = "CNAME"
	RecordTypeMx    RecordType = "MX"
	RecordTypeTxt   RecordType = "TXT"
	RecordTypeNs    RecordType = "NS"
	RecordTypeSoa   RecordType = "SOA"
	RecordTypeSrv   RecordType = "SRV"
	RecordTypePtr   RecordType = "PTR"
	RecordTypeCaa   RecordType = "CAA"
)

type RecordType string

func (rt RecordType) IsValid() error {
	switch rt {
	case RecordTypeA, RecordTypeAAAA, RecordTypeCname, RecordTypeMx, RecordTypeTxt,
		RecordTypeNs, RecordTypeSoa, RecordTypeSrv, RecordTypePtr, RecordTypeCaa:
		return nil
	}

	return fmt.Errorf("invalid record type %q", string(rt))
}

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

type Role string

func (r Role) IsValid() error {
	switch r {
	case RoleViewer, RoleEditor, RoleAdmin:
		return nil
	}

	return fmt.Errorf("invalid role %q", string(r))
}

// Priority returns the fixed ordering viewer=1 < editor=2 < admin=3.
// Zero means the role is unknown and never satisfies any requirement.
func (r Role) Priority() int {
	switch r {
	case RoleViewer:
		return 1
	case RoleEditor:
		return 2
	case RoleAdmin:
		return 3
	}
	return 0
}

const (
	MembershipPending MembershipStatus = "pending"
	MembershipActive  MembershipStatus = "active"
)

type MembershipStatus string

const (
	ZoneStatusPending   ZoneStatus = "pending"
	ZoneStatusActive    ZoneStatus = "active"
	ZoneStatusSuspended ZoneStatus = "suspended"
)

type ZoneStatus string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

type Action string

// Actor is the already-verified caller identity the core operates on behalf of.
type Actor struct {
	UserID        uint
	IsGlobalAdmin bool
}
