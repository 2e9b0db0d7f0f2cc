// Package dbtest provides an in-memory db.Database for tests. Transactions
// snapshot all tables and restore them when the closure fails, and FailOn lets
// a test force a storage fault on a single method to exercise rollback paths.
package dbtest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/zonekit/zonekit/pkg/db"
)

type Memory struct {
	nextID uint

	Users       []db.User
	Zones       []db.Zone
	Records     []db.DNSRecord
	Memberships []db.DomainMembership
	Audit       []db.AuditLogEntry

	// FailOn maps a method name to an error that method should return.
	FailOn map[string]error
}

func New() *Memory {
	return &Memory{FailOn: map[string]error{}}
}

func (m *Memory) fail(method string) error {
	return m.FailOn[method]
}

func (m *Memory) id() uint {
	m.nextID++
	return m.nextID
}

func (m *Memory) Transaction(fn func(tx db.Store) error) error {
	snapshot := &Memory{
		nextID:      m.nextID,
		Users:       append([]db.User(nil), m.Users...),
		Zones:       append([]db.Zone(nil), m.Zones...),
		Records:     append([]db.DNSRecord(nil), m.Records...),
		Memberships: append([]db.DomainMembership(nil), m.Memberships...),
		Audit:       append([]db.AuditLogEntry(nil), m.Audit...),
	}

	if err := fn(m); err != nil {
		m.nextID = snapshot.nextID
		m.Users = snapshot.Users
		m.Zones = snapshot.Zones
		m.Records = snapshot.Records
		m.Memberships = snapshot.Memberships
		m.Audit = snapshot.Audit
		return err
	}
	return nil
}

func (m *Memory) CreateUser(user *db.User) error {
	if err := m.fail("CreateUser"); err != nil {
		return err
	}
	user.ID = m.id()
	user.CreatedAt = time.Now()
	m.Users = append(m.Users, *user)
	return nil
}

func (m *Memory) FindUser(id uint) (*db.User, error) {
	if err := m.fail("FindUser"); err != nil {
		return nil, err
	}
	for i := range m.Users {
		if m.Users[i].ID == id {
			u := m.Users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *Memory) FindUserByEmail(email string) (*db.User, error) {
	if err := m.fail("FindUserByEmail"); err != nil {
		return nil, err
	}
	for i := range m.Users {
		if m.Users[i].Email == email {
			u := m.Users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *Memory) FindZone(domain string) (*db.Zone, error) {
	if err := m.fail("FindZone"); err != nil {
		return nil, err
	}
	for i := range m.Zones {
		if m.Zones[i].Domain == domain {
			z := m.Zones[i]
			return &z, nil
		}
	}
	return nil, nil
}

func (m *Memory) FindZoneForUpdate(domain string) (*db.Zone, error) {
	if err := m.fail("FindZoneForUpdate"); err != nil {
		return nil, err
	}
	return m.FindZone(domain)
}

func (m *Memory) CreateZone(zone *db.Zone) error {
	if err := m.fail("CreateZone"); err != nil {
		return err
	}
	zone.ID = m.id()
	zone.CreatedAt = time.Now()
	m.Zones = append(m.Zones, *zone)
	return nil
}

func (m *Memory) ListUserDomains(userID uint) ([]string, error) {
	if err := m.fail("ListUserDomains"); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var domains []string
	for i := range m.Zones {
		if m.Zones[i].OwnerUserID == userID && !seen[m.Zones[i].Domain] {
			seen[m.Zones[i].Domain] = true
			domains = append(domains, m.Zones[i].Domain)
		}
	}
	for i := range m.Memberships {
		mem := m.Memberships[i]
		if mem.UserID == userID && mem.Status == "active" && !seen[mem.Domain] {
			seen[mem.Domain] = true
			domains = append(domains, mem.Domain)
		}
	}
	sort.Strings(domains)
	return domains, nil
}

func (m *Memory) FindMembership(domain string, userID uint) (*db.DomainMembership, error) {
	if err := m.fail("FindMembership"); err != nil {
		return nil, err
	}
	for i := range m.Memberships {
		if m.Memberships[i].Domain == domain && m.Memberships[i].UserID == userID {
			mem := m.Memberships[i]
			return &mem, nil
		}
	}
	return nil, nil
}

func (m *Memory) FindMembershipByID(id uint) (*db.DomainMembership, error) {
	if err := m.fail("FindMembershipByID"); err != nil {
		return nil, err
	}
	for i := range m.Memberships {
		if m.Memberships[i].ID == id {
			mem := m.Memberships[i]
			return &mem, nil
		}
	}
	return nil, nil
}

func (m *Memory) CreateMembership(mem *db.DomainMembership) error {
	if err := m.fail("CreateMembership"); err != nil {
		return err
	}
	mem.ID = m.id()
	mem.CreatedAt = time.Now()
	m.Memberships = append(m.Memberships, *mem)
	return nil
}

func (m *Memory) SaveMembership(mem *db.DomainMembership) error {
	if err := m.fail("SaveMembership"); err != nil {
		return err
	}
	for i := range m.Memberships {
		if m.Memberships[i].ID == mem.ID {
			m.Memberships[i] = *mem
			return nil
		}
	}
	return fmt.Errorf("membership %d not found", mem.ID)
}

func (m *Memory) DeleteMembership(id uint) error {
	if err := m.fail("DeleteMembership"); err != nil {
		return err
	}
	for i := range m.Memberships {
		if m.Memberships[i].ID == id {
			m.Memberships = append(m.Memberships[:i], m.Memberships[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *Memory) ListMemberships(domain string) ([]db.DomainMembership, error) {
	if err := m.fail("ListMemberships"); err != nil {
		return nil, err
	}
	var out []db.DomainMembership
	for i := range m.Memberships {
		if m.Memberships[i].Domain == domain {
			out = append(out, m.Memberships[i])
		}
	}
	return out, nil
}

func (m *Memory) DeleteStaleInvites(olderThan time.Time) (int64, error) {
	if err := m.fail("DeleteStaleInvites"); err != nil {
		return 0, err
	}
	var kept []db.DomainMembership
	var purged int64
	for i := range m.Memberships {
		mem := m.Memberships[i]
		if mem.Status == "pending" && mem.CreatedAt.Before(olderThan) {
			purged++
			continue
		}
		kept = append(kept, mem)
	}
	m.Memberships = kept
	return purged, nil
}

func (m *Memory) ListActiveRecords(domain, nameFilter string) ([]db.DNSRecord, error) {
	if err := m.fail("ListActiveRecords"); err != nil {
		return nil, err
	}
	var out []db.DNSRecord
	for i := range m.Records {
		r := m.Records[i]
		if r.Domain == domain && r.IsActive && (nameFilter == "" || r.Name == nameFilter) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) ListRecords(domain string, opts db.ListOptions) ([]db.DNSRecord, int64, error) {
	if err := m.fail("ListRecords"); err != nil {
		return nil, 0, err
	}
	var matched []db.DNSRecord
	for i := range m.Records {
		r := m.Records[i]
		if r.Domain != domain {
			continue
		}
		if opts.Type != "" && r.Type != opts.Type {
			continue
		}
		if opts.Name != "" && !strings.Contains(r.Name, opts.Name) {
			continue
		}
		if opts.IsActive != nil && r.IsActive != *opts.IsActive {
			continue
		}
		matched = append(matched, r)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		var less bool
		switch opts.SortBy {
		case "name":
			less = matched[i].Name < matched[j].Name
		case "type":
			less = matched[i].Type < matched[j].Type
		case "ttl":
			less = matched[i].TTL < matched[j].TTL
		case "updated_at":
			less = matched[i].UpdatedAt.Before(matched[j].UpdatedAt)
		default:
			less = matched[i].ID < matched[j].ID
		}
		if opts.SortOrder == "DESC" {
			return !less
		}
		return less
	})

	total := int64(len(matched))
	if opts.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, total, nil
}

func (m *Memory) FindRecordByID(domain string, id uint) (*db.DNSRecord, error) {
	if err := m.fail("FindRecordByID"); err != nil {
		return nil, err
	}
	for i := range m.Records {
		if m.Records[i].ID == id && m.Records[i].Domain == domain {
			r := m.Records[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (m *Memory) FindRecord(domain, rType, name, value string) (*db.DNSRecord, error) {
	if err := m.fail("FindRecord"); err != nil {
		return nil, err
	}
	for i := range m.Records {
		r := m.Records[i]
		if r.Domain == domain && r.Type == rType && r.Name == name && r.Value == value && r.IsActive {
			return &r, nil
		}
	}
	return nil, nil
}

func (m *Memory) FindActiveCNAME(domain, name string) (*db.DNSRecord, error) {
	if err := m.fail("FindActiveCNAME"); err != nil {
		return nil, err
	}
	for i := range m.Records {
		r := m.Records[i]
		if r.Domain == domain && r.Name == name && r.Type == "CNAME" && r.IsActive {
			return &r, nil
		}
	}
	return nil, nil
}

func (m *Memory) FindActiveSOA(domain string) (*db.DNSRecord, error) {
	if err := m.fail("FindActiveSOA"); err != nil {
		return nil, err
	}
	for i := range m.Records {
		r := m.Records[i]
		if r.Domain == domain && r.Type == "SOA" && r.IsActive {
			return &r, nil
		}
	}
	return nil, nil
}

func (m *Memory) CreateRecord(r *db.DNSRecord) error {
	if err := m.fail("CreateRecord"); err != nil {
		return err
	}
	r.ID = m.id()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	m.Records = append(m.Records, *r)
	return nil
}

func (m *Memory) SaveRecord(r *db.DNSRecord) error {
	if err := m.fail("SaveRecord"); err != nil {
		return err
	}
	for i := range m.Records {
		if m.Records[i].ID == r.ID {
			r.UpdatedAt = time.Now()
			m.Records[i] = *r
			return nil
		}
	}
	return fmt.Errorf("record %d not found", r.ID)
}

func (m *Memory) DeleteRecord(id uint) error {
	if err := m.fail("DeleteRecord"); err != nil {
		return err
	}
	for i := range m.Records {
		if m.Records[i].ID == id {
			m.Records = append(m.Records[:i], m.Records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *Memory) CountRecords(domain string) (int64, int64, error) {
	if err := m.fail("CountRecords"); err != nil {
		return 0, 0, err
	}
	var total, active int64
	for i := range m.Records {
		if m.Records[i].Domain == domain {
			total++
			if m.Records[i].IsActive {
				active++
			}
		}
	}
	return total, active, nil
}

func (m *Memory) CountRecordsByType(domain string) (map[string]int64, error) {
	if err := m.fail("CountRecordsByType"); err != nil {
		return nil, err
	}
	byType := map[string]int64{}
	for i := range m.Records {
		if m.Records[i].Domain == domain {
			byType[m.Records[i].Type]++
		}
	}
	return byType, nil
}

func (m *Memory) AppendAuditLog(entry *db.AuditLogEntry) error {
	if err := m.fail("AppendAuditLog"); err != nil {
		return err
	}
	entry.ID = m.id()
	entry.CreatedAt = time.Now()
	m.Audit = append(m.Audit, *entry)
	return nil
}

func (m *Memory) ListAuditLog(domain string, limit int) ([]db.AuditLogEntry, error) {
	if err := m.fail("ListAuditLog"); err != nil {
		return nil, err
	}
	var out []db.AuditLogEntry
	for i := len(m.Audit) - 1; i >= 0 && len(out) < limit; i-- {
		if m.Audit[i].Domain == domain {
			out = append(out, m.Audit[i])
		}
	}
	return out, nil
}
