package db

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	MerchantName  string
	Email         string `gorm:"uniqueIndex"`
	PasswordHash  string
	IsGlobalAdmin bool
}

type Zone struct {
	gorm.Model
	Domain      string `gorm:"uniqueIndex"`
	OwnerUserID uint
	Status      string
	NameServers string `gorm:"type:text"` // Intentionally denormalized; informational only
}

type DNSRecord struct {
	ID            uint   `gorm:"primarykey"`
	Domain        string `gorm:"index:idx_record_owner,priority:1"`
	ZoneID        uint
	Zone          Zone   `gorm:"constraint:OnDelete:CASCADE;"`
	Type          string `gorm:"index"`
	Name          string `gorm:"index:idx_record_owner,priority:2"`
	Value         string `gorm:"type:text"`
	TTL           int
	Priority      *int
	Comment       string
	IsActive      bool
	CreatorUserID uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type DomainMembership struct {
	gorm.Model
	Domain          string `gorm:"uniqueIndex:idx_membership,priority:1"`
	UserID          uint   `gorm:"uniqueIndex:idx_membership,priority:2"`
	Role            string
	InvitedByUserID uint
	Status          string
}

// AuditLogEntry rows are append-only; nothing in the service updates or
// deletes them.
type AuditLogEntry struct {
	ID         uint `gorm:"primarykey"`
	UserID     uint
	Action     string
	EntityType string
	EntityID   uint
	Domain     string `gorm:"index"`
	Details    string `gorm:"type:text"`
	CreatedAt  time.Time
}

func DenormalizeNameServers(nameServers []string) string {
	return strings.Join(nameServers, ",")
}

func NormalizeNameServers(stored string) []string {
	if stored == "" {
		return nil
	}
	return strings.Split(stored, ",")
}
