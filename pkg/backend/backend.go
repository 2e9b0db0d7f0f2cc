package backend

import (
	"github.com/zonekit/zonekit/pkg/db"
	"github.com/zonekit/zonekit/pkg/model"
)

type Backend interface {
	CreateUser(merchantName, email, password string) (model.UserResponse, error)
	Authenticate(email, password string) (model.Actor, model.UserResponse, error)

	CreateRecord(actor model.Actor, domain string, payload model.RecordPayload) (model.RecordResponse, error)
	GetRecord(actor model.Actor, domain string, id uint) (model.RecordResponse, error)
	UpdateRecord(actor model.Actor, domain string, id uint, update model.RecordUpdate) (model.RecordResponse, error)
	DeleteRecord(actor model.Actor, domain string, id uint) error
	BulkUpdateRecords(actor model.Actor, domain string, items []model.BulkUpdateItem) []model.BulkResult
	BulkDeleteRecords(actor model.Actor, domain string, ids []uint) []model.BulkResult
	ListRecords(actor model.Actor, domain string, filters model.ListFilters) (model.RecordPage, error)
	GetStats(actor model.Actor, domain string) (model.DomainStats, error)
	ListUserDomains(actor model.Actor) ([]string, error)

	InviteMember(actor model.Actor, domain, email string, role model.Role) (model.MemberResponse, error)
	AcceptInvite(actor model.Actor, membershipID uint) (model.MemberResponse, error)
	ListMembers(actor model.Actor, domain string) ([]model.MemberResponse, error)
	RemoveMember(actor model.Actor, domain string, userID uint) error
	ChangeMemberRole(actor model.Actor, domain string, userID uint, role model.Role) (model.MemberResponse, error)
	ListAuditLog(actor model.Actor, domain string, limit int) ([]model.AuditEntryResponse, error)

	StartInvitePurgerDaemon(done <-chan struct{})
}

// Options tune the non-core behavior of the backend. Zero values fall back to
// the defaults below.
type Options struct {
	// DefaultNameServers are stored on lazily created zones; informational only.
	DefaultNameServers []string
	// InviteMaxAgeSeconds is how long a pending invite lives before the purger
	// removes it.
	InviteMaxAgeSeconds int64
	// PurgeIntervalSeconds is how often the invite purger runs.
	PurgeIntervalSeconds int64
}

const (
	defaultInviteMaxAgeSeconds  = 14 * 24 * 60 * 60
	defaultPurgeIntervalSeconds = 60 * 60
	defaultTTL                  = 3600
)

type backend struct {
	db                   db.Database
	defaultNameServers   []string
	inviteMaxAgeSeconds  int64
	purgeIntervalSeconds int64
}

func NewBackend(database db.Database, opts Options) (Backend, error) {
	if opts.InviteMaxAgeSeconds <= 0 {
		opts.InviteMaxAgeSeconds = defaultInviteMaxAgeSeconds
	}
	if opts.PurgeIntervalSeconds <= 0 {
		opts.PurgeIntervalSeconds = defaultPurgeIntervalSeconds
	}

	return &backend{
		db:                   database,
		defaultNameServers:   opts.DefaultNameServers,
		inviteMaxAgeSeconds:  opts.InviteMaxAgeSeconds,
		purgeIntervalSeconds: opts.PurgeIntervalSeconds,
	}, nil
}
