package db

import (
	"time"
)

// ListOptions are the sanitized paging/filter parameters for record listing.
// The caller is responsible for whitelisting SortBy and SortOrder before they
// reach the query builder.
type ListOptions struct {
	Type      string
	Name      string
	IsActive  *bool
	Offset    int
	Limit     int
	SortBy    string
	SortOrder string
}

// Store is the set of persistence operations. Find methods return nil when no
// row matches.
type Store interface {
	CreateUser(user *User) error
	FindUser(id uint) (*User, error)
	FindUserByEmail(email string) (*User, error)

	FindZone(domain string) (*Zone, error)
	// FindZoneForUpdate locks the zone row for the remainder of the ambient
	// transaction, serializing concurrent writers per domain.
	FindZoneForUpdate(domain string) (*Zone, error)
	CreateZone(zone *Zone) error
	ListUserDomains(userID uint) ([]string, error)

	FindMembership(domain string, userID uint) (*DomainMembership, error)
	FindMembershipByID(id uint) (*DomainMembership, error)
	CreateMembership(m *DomainMembership) error
	SaveMembership(m *DomainMembership) error
	DeleteMembership(id uint) error
	ListMemberships(domain string) ([]DomainMembership, error)
	DeleteStaleInvites(olderThan time.Time) (int64, error)

	ListActiveRecords(domain, nameFilter string) ([]DNSRecord, error)
	ListRecords(domain string, opts ListOptions) ([]DNSRecord, int64, error)
	FindRecordByID(domain string, id uint) (*DNSRecord, error)
	FindRecord(domain, rType, name, value string) (*DNSRecord, error)
	FindActiveCNAME(domain, name string) (*DNSRecord, error)
	FindActiveSOA(domain string) (*DNSRecord, error)
	CreateRecord(r *DNSRecord) error
	SaveRecord(r *DNSRecord) error
	DeleteRecord(id uint) error
	CountRecords(domain string) (total int64, active int64, err error)
	CountRecordsByType(domain string) (map[string]int64, error)

	AppendAuditLog(entry *AuditLogEntry) error
	ListAuditLog(domain string, limit int) ([]AuditLogEntry, error)
}

// Database is a Store that can also run a group of operations in one
// transaction. The Store handed to fn sees uncommitted writes and rolls the
// whole group back when fn returns an error.
type Database interface {
	Store
	Transaction(fn func(tx Store) error) error
}
