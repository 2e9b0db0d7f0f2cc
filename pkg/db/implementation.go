package db

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type database struct {
	db      *gorm.DB
	dialect string
}

// New creates a new database connection
func New(ctx context.Context, dialect string, dsn string, config *gorm.Config) (Database, error) {
	if config == nil {
		config = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	}

	var db *gorm.DB
	var err error

	if dialect == "sqlite" {
		db, err = gorm.Open(sqlite.Open(dsn), config)
		if err == nil {
			db.Exec("PRAGMA foreign_keys = ON")
		}
	} else if dialect == "mysql" {
		db, err = gorm.Open(mysql.Open(dsn), config)
	} else {
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}

	if err != nil {
		return nil, err
	}

	db = db.WithContext(ctx)

	if err := db.AutoMigrate(
		&User{},
		&Zone{},
		&DNSRecord{},
		&DomainMembership{},
		&AuditLogEntry{},
	); err != nil {
		return nil, err
	}

	d := &database{
		db:      db,
		dialect: dialect,
	}
	return d, nil
}

func (d *database) Transaction(fn func(tx Store) error) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return fn(&database{db: tx, dialect: d.dialect})
	})
}

func (d *database) CreateUser(user *User) error {
	return d.db.Create(user).Error
}

func (d *database) FindUser(id uint) (*User, error) {
	var user User
	sql := d.db.Where("id = ?", id).Limit(1).Find(&user)
	if sql.Error != nil || sql.RowsAffected == 0 {
		return nil, sql.Error
	}
	return &user, nil
}

func (d *database) FindUserByEmail(email string) (*User, error) {
	var user User
	sql := d.db.Where("email = ?", email).Limit(1).Find(&user)
	if sql.Error != nil || sql.RowsAffected == 0 {
		return nil, sql.Error
	}
	return &user, nil
}

func (d *database) FindZone(domain string) (*Zone, error) {
	var zone Zone
	sql := d.db.Where("domain = ?", domain).Limit(1).Find(&zone)
	if sql.Error != nil || sql.RowsAffected == 0 {
		return nil, sql.Error
	}
	return &zone, nil
}

func (d *database) FindZoneForUpdate(domain string) (*Zone, error) {
	tx := d.db
	// sqlite has a single writer and does not parse FOR UPDATE
	if d.dialect == "mysql" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var zone Zone
	sql := tx.Where("domain = ?", domain).Limit(1).Find(&zone)
	if sql.Error != nil || sql.RowsAffected == 0 {
		return nil, sql.Error
	}
	return &zone, nil
}

func (d *database) CreateZone(zone *Zone) error {
	return d.db.Create(zone).Error
}

func (d *database) ListUserDomains(userID uint) ([]string, error) {
	var owned []string
	sql := d.db.Model(&Zone{}).Where("owner_user_id = ?", userID).
		Order("domain ASC").Pluck("domain", &owned)
	if sql.Error != nil {
		return nil, sql.Error
	}

	var membered []string
	sql = d.db.Model(&DomainMembership{}).
		Where("user_id = ? and status = ?", userID, "active").
		Order("domain ASC").Pluck("domain", &membered)
	if sql.Error != nil {
		return nil, sql.Error
	}

	seen := make(map[string]bool, len(owned))
	domains := make([]string, 0, len(owned)+len(membered))
	for _, lists := range [][]string{owned, membered} {
		for _, domain := range lists {
			if !seen[domain] {
				seen[domain] = true
				domains = append(domains, domain)
			}
		}
	}
	return domains, nil
}

func (d *database) FindMembership(domain string, userID uint) (*DomainMembership, error) {
	var m DomainMembership
	sql := d.db.Where("domain = ? and user_id = ?", domain, userID).Limit(1).Find(&m)
	if sql.Error != nil || sql.RowsAffected == 0 {
		return nil, sql.Error
	}
	return &m, nil
}

func (d *database) FindMembershipByID(id uint) (*DomainMembership, error) {
	var m DomainMembership
	sql := d.db.Where("id = ?", id).Limit(1).Find(&m)
	if sql.Error != nil || sql.RowsAffected == 0 {
		return nil, sql.Error
	}
	return &m, nil
}

func (d *database) CreateMembership(m *DomainMembership) error {
	return d.db.Create(m).Error
}

func (d *database) SaveMembership(m *DomainMembership) error {
	return d.db.Save(m).Error
}

func (d *database) DeleteMembership(id uint) error {
	return d.db.Unscoped().Delete(&DomainMembership{}, id).Error
}

func (d *database) ListMemberships(domain string) ([]DomainMembership, error) {
	var memberships []DomainMembership
	sql := d.db.Where("domain = ?", domain).Order("created_at ASC").Find(&memberships)
	return memberships, sql.Error
}

func (d *database) DeleteStaleInvites(olderThan time.Time) (int64, error) {
	sql := d.db.Unscoped().
		Where("status = ? and created_at < ?", "pending", olderThan).
		Delete(&DomainMembership{})
	return sql.RowsAffected, sql.Error
}

func (d *database) ListActiveRecords(domain, nameFilter string) ([]DNSRecord, error) {
	tx := d.db.Where("domain = ? and is_active = ?", domain, true)
	if nameFilter != "" {
		tx = tx.Where("name = ?", nameFilter)
	}

	var records []DNSRecord
	sql := tx.Find(&records)
	return records, sql.Error
}

func (d *database) ListRecords(domain string, opts ListOptions) ([]DNSRecord, int64, error) {
	tx := d.db.Model(&DNSRecord{}).Where("domain = ?", domain)
	if opts.Type != "" {
		tx = tx.Where("type = ?", opts.Type)
	}
	if opts.Name != "" {
		tx = tx.Where("name LIKE ?", "%"+opts.Name+"%")
	}
	if opts.IsActive != nil {
		tx = tx.Where("is_active = ?", *opts.IsActive)
	}

	var total int64
	if sql := tx.Count(&total); sql.Error != nil {
		return nil, 0, sql.Error
	}

	var records []DNSRecord
	sql := tx.Order(fmt.Sprintf("%s %s", opts.SortBy, opts.SortOrder)).
		Offset(opts.Offset).Limit(opts.Limit).Find(&records)
	return records, total, sql.Error
}

func (d *database) FindRecordByID(domain string, id uint) (*DNSRecord, error) {
	var r DNSRecord
	sql := d.db.Where("id = ? and domain = ?", id, domain).Limit(1).Find(&r)
	if sql.Error != nil || sql.RowsAffected == 0 {
		return nil, sql.Error
	}
	return &r, nil
}

func (d *database) FindRecord(domain, rType, name, value string) (*DNSRecord, error) {
	var r DNSRecord
	sql := d.db.Where("domain = ? and type = ? and name = ? and value = ? and is_active = ?",
		domain, rType, name, value, true).Limit(1).Find(&r)
	if sql.Error != nil || sql.RowsAffected == 0 {
		return nil, sql.Error
	}
	return &r, nil
}

func (d *database) FindActiveCNAME(domain, name string) (*DNSRecord, error) {
	var r DNSRecord
	sql := d.db.Where("domain = ? and name = ? and type = ? and is_active = ?",
		domain, name, "CNAME", true).Limit(1).Find(&r)
	if sql.Error != nil || sql.RowsAffected == 0 {
		return nil, sql.Error
	}
	return &r, nil
}

func (d *database) FindActiveSOA(domain string) (*DNSRecord, error) {
	var r DNSRecord
	sql := d.db.Where("domain = ? and type = ? and is_active = ?",
		domain, "SOA", true).Limit(1).Find(&r)
	if sql.Error != nil || sql.RowsAffected == 0 {
		return nil, sql.Error
	}
	return &r, nil
}

func (d *database) CreateRecord(r *DNSRecord) error {
	return d.db.Create(r).Error
}

func (d *database) SaveRecord(r *DNSRecord) error {
	return d.db.Save(r).Error
}

func (d *database) DeleteRecord(id uint) error {
	return d.db.Delete(&DNSRecord{}, id).Error
}

func (d *database) CountRecords(domain string) (int64, int64, error) {
	var total, active int64
	sql := d.db.Model(&DNSRecord{}).Where("domain = ?", domain).Count(&total)
	if sql.Error != nil {
		return 0, 0, sql.Error
	}
	sql = d.db.Model(&DNSRecord{}).Where("domain = ? and is_active = ?", domain, true).Count(&active)
	return total, active, sql.Error
}

func (d *database) CountRecordsByType(domain string) (map[string]int64, error) {
	var rows []struct {
		Type  string
		Count int64
	}
	sql := d.db.Model(&DNSRecord{}).Select("type, count(id) as count").
		Where("domain = ?", domain).Group("type").Scan(&rows)
	if sql.Error != nil {
		return nil, sql.Error
	}

	byType := make(map[string]int64, len(rows))
	for _, row := range rows {
		byType[row.Type] = row.Count
	}
	return byType, nil
}

func (d *database) AppendAuditLog(entry *AuditLogEntry) error {
	return d.db.Create(entry).Error
}

func (d *database) ListAuditLog(domain string, limit int) ([]AuditLogEntry, error) {
	var entries []AuditLogEntry
	sql := d.db.Where("domain = ?", domain).Order("created_at DESC").Limit(limit).Find(&entries)
	return entries, sql.Error
}
