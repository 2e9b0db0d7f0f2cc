package backend

import (
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/zonekit/zonekit/pkg/access"
	"github.com/zonekit/zonekit/pkg/db"
	"github.com/zonekit/zonekit/pkg/model"
	"github.com/zonekit/zonekit/pkg/record"
)

func canView(store access.Store, actor model.Actor, domain string) error {
	return access.CanView(store, actor, domain)
}

// CreateRecord runs the full mutation pipeline: access gate, field and grammar
// validation, consistency checks against a snapshot read in the same
// transaction, then the record insert plus one audit entry as a single commit.
// The zone is created lazily, owned by the actor, when this is the first
// record for the domain.
func (b *backend) CreateRecord(actor model.Actor, domain string, payload model.RecordPayload) (model.RecordResponse, error) {
	var resp model.RecordResponse

	if !record.IsFQDN(domain) {
		return resp, model.InvalidInput("domain", "must be a fully-qualified domain name")
	}

	err := b.db.Transaction(func(tx db.Store) error {
		zone, err := tx.FindZoneForUpdate(domain)
		if err != nil {
			return model.StorageError(err)
		}

		if zone == nil {
			zone = &db.Zone{
				Domain:      domain,
				OwnerUserID: actor.UserID,
				Status:      string(model.ZoneStatusActive),
				NameServers: db.DenormalizeNameServers(b.defaultNameServers),
			}
			if err := tx.CreateZone(zone); err != nil {
				return model.StorageError(err)
			}
			logrus.WithField("domain", domain).WithField("owner", actor.UserID).
				Info("created zone on first record create")
		}

		if err := access.ResolveZone(tx, actor, zone, model.RoleEditor); err != nil {
			return err
		}
		if zone.Status == string(model.ZoneStatusSuspended) {
			return model.Forbidden("domain %s is suspended", domain)
		}

		rec, err := buildRecord(actor, zone, payload)
		if err != nil {
			return err
		}

		if err := checkConsistency(tx, domain, model.RecordType(rec.Type), rec.Name, rec.Value, 0); err != nil {
			return err
		}

		if err := tx.CreateRecord(rec); err != nil {
			return model.StorageError(err)
		}

		resp = toRecordResponse(rec)
		return appendAudit(tx, actor, model.ActionCreate, entityRecord, rec.ID, domain, nil, resp)
	})

	return resp, err
}

// buildRecord validates the payload and assembles the row to insert. This is
// the FieldValidate stage; nothing here touches storage.
func buildRecord(actor model.Actor, zone *db.Zone, p model.RecordPayload) (*db.DNSRecord, error) {
	if err := p.Type.IsValid(); err != nil {
		return nil, model.InvalidInput("type", "%v", err)
	}
	if !record.IsRecordName(p.Name) {
		return nil, model.InvalidInput("name", "may only contain alphanumerics, dot, underscore and hyphen")
	}

	ttl := p.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}
	if !record.IsValidTTL(ttl) {
		return nil, model.InvalidInput("ttl", "must be between %d and %d seconds", record.MinTTL, record.MaxTTL)
	}

	value, priority, err := record.Compose(p.Type, p.Name, p)
	if err != nil {
		return nil, err
	}

	return &db.DNSRecord{
		Domain:        zone.Domain,
		ZoneID:        zone.ID,
		Type:          string(p.Type),
		Name:          p.Name,
		Value:         value,
		TTL:           ttl,
		Priority:      priority,
		Comment:       p.Comment,
		IsActive:      true,
		CreatorUserID: actor.UserID,
	}, nil
}

func (b *backend) GetRecord(actor model.Actor, domain string, id uint) (model.RecordResponse, error) {
	var resp model.RecordResponse

	if err := canView(b.db, actor, domain); err != nil {
		return resp, err
	}

	rec, err := b.db.FindRecordByID(domain, id)
	if err != nil {
		return resp, model.StorageError(err)
	}
	if rec == nil {
		return resp, model.NotFound("record %d not found in domain %s", id, domain)
	}

	resp = toRecordResponse(rec)
	if fields, err := record.Parse(model.RecordType(rec.Type), rec.Value); err == nil {
		fields.Name = rec.Name
		fields.TTL = rec.TTL
		if rec.Priority != nil {
			fields.Priority = rec.Priority
		}
		resp.Fields = &fields
	}
	return resp, nil
}

// UpdateRecord mutates value/ttl/priority/comment/isActive in place; type and
// name are immutable. The same validate-check-commit pipeline as CreateRecord
// applies.
func (b *backend) UpdateRecord(actor model.Actor, domain string, id uint, update model.RecordUpdate) (model.RecordResponse, error) {
	var resp model.RecordResponse

	err := b.db.Transaction(func(tx db.Store) error {
		zone, err := tx.FindZoneForUpdate(domain)
		if err != nil {
			return model.StorageError(err)
		}
		if zone == nil {
			return model.NotFound("domain %s not found", domain)
		}
		if err := access.ResolveZone(tx, actor, zone, model.RoleEditor); err != nil {
			return err
		}
		if zone.Status == string(model.ZoneStatusSuspended) {
			return model.Forbidden("domain %s is suspended", domain)
		}

		rec, err := tx.FindRecordByID(domain, id)
		if err != nil {
			return model.StorageError(err)
		}
		if rec == nil {
			return model.NotFound("record %d not found in domain %s", id, domain)
		}

		before := toRecordResponse(rec)

		if err := applyUpdate(rec, update); err != nil {
			return err
		}

		if rec.IsActive {
			if err := checkConsistency(tx, domain, model.RecordType(rec.Type), rec.Name, rec.Value, rec.ID); err != nil {
				return err
			}
		}

		if err := tx.SaveRecord(rec); err != nil {
			return model.StorageError(err)
		}

		resp = toRecordResponse(rec)
		return appendAudit(tx, actor, model.ActionUpdate, entityRecord, rec.ID, domain, before, resp)
	})

	return resp, err
}

// applyUpdate validates and applies the provided fields onto the stored row.
// A new value is parsed into structured fields and re-composed so update-time
// validation can never drift from create-time validation.
func applyUpdate(rec *db.DNSRecord, update model.RecordUpdate) error {
	rType := model.RecordType(rec.Type)

	if update.Value != nil {
		fields, err := record.Parse(rType, *update.Value)
		if err != nil {
			return err
		}
		if rType == model.RecordTypeMx {
			if update.Priority != nil {
				fields.Priority = update.Priority
			} else {
				fields.Priority = rec.Priority
			}
		}

		value, priority, err := record.Compose(rType, rec.Name, fields)
		if err != nil {
			return err
		}
		rec.Value = value
		if priority != nil {
			rec.Priority = priority
		}
	}

	if update.Priority != nil {
		if rType != model.RecordTypeMx && rType != model.RecordTypeSrv {
			return model.InvalidInput("priority", "only valid for MX and SRV records")
		}
		if !record.IsValidPriority(*update.Priority) {
			return model.InvalidInput("priority", "must be 0-65535")
		}
		rec.Priority = update.Priority

		// An SRV value encodes the priority, keep the two in sync.
		if rType == model.RecordTypeSrv {
			fields, err := record.Parse(rType, rec.Value)
			if err != nil {
				return err
			}
			fields.Priority = update.Priority
			value, _, err := record.Compose(rType, rec.Name, fields)
			if err != nil {
				return err
			}
			rec.Value = value
		}
	}

	if update.TTL != nil {
		if !record.IsValidTTL(*update.TTL) {
			return model.InvalidInput("ttl", "must be between %d and %d seconds", record.MinTTL, record.MaxTTL)
		}
		rec.TTL = *update.TTL
	}

	if update.Comment != nil {
		rec.Comment = *update.Comment
	}
	if update.IsActive != nil {
		rec.IsActive = *update.IsActive
	}

	return nil
}

func (b *backend) DeleteRecord(actor model.Actor, domain string, id uint) error {
	return b.db.Transaction(func(tx db.Store) error {
		zone, err := tx.FindZoneForUpdate(domain)
		if err != nil {
			return model.StorageError(err)
		}
		if zone == nil {
			return model.NotFound("domain %s not found", domain)
		}
		if err := access.ResolveZone(tx, actor, zone, model.RoleEditor); err != nil {
			return err
		}
		if zone.Status == string(model.ZoneStatusSuspended) {
			return model.Forbidden("domain %s is suspended", domain)
		}

		rec, err := tx.FindRecordByID(domain, id)
		if err != nil {
			return model.StorageError(err)
		}
		if rec == nil {
			return model.NotFound("record %d not found in domain %s", id, domain)
		}

		if err := tx.DeleteRecord(rec.ID); err != nil {
			return model.StorageError(err)
		}

		return appendAudit(tx, actor, model.ActionDelete, entityRecord, rec.ID, domain, toRecordResponse(rec), nil)
	})
}

// BulkUpdateRecords applies each item independently; one item's failure does
// not abort or roll back its siblings. This is deliberately weaker than the
// single-item atomicity guarantee.
func (b *backend) BulkUpdateRecords(actor model.Actor, domain string, items []model.BulkUpdateItem) []model.BulkResult {
	results := make([]model.BulkResult, 0, len(items))
	for _, item := range items {
		if _, err := b.UpdateRecord(actor, domain, item.ID, item.RecordUpdate); err != nil {
			results = append(results, model.BulkResult{ID: item.ID, Error: err.Error()})
			continue
		}
		results = append(results, model.BulkResult{ID: item.ID, Success: true})
	}
	return results
}

func (b *backend) BulkDeleteRecords(actor model.Actor, domain string, ids []uint) []model.BulkResult {
	results := make([]model.BulkResult, 0, len(ids))
	for _, id := range ids {
		if err := b.DeleteRecord(actor, domain, id); err != nil {
			results = append(results, model.BulkResult{ID: id, Error: err.Error()})
			continue
		}
		results = append(results, model.BulkResult{ID: id, Success: true})
	}
	return results
}

var sortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"type":      "type",
	"ttl":       "ttl",
}

func (b *backend) ListRecords(actor model.Actor, domain string, filters model.ListFilters) (model.RecordPage, error) {
	var page model.RecordPage

	if err := canView(b.db, actor, domain); err != nil {
		return page, err
	}

	if filters.Type != "" {
		if err := filters.Type.IsValid(); err != nil {
			return page, model.InvalidInput("type", "%v", err)
		}
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	pageNum := filters.Page
	if pageNum < 1 {
		pageNum = 1
	}

	sortBy, ok := sortFields[filters.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if slices.Contains([]string{"ASC", "DESC"}, filters.SortOrder) {
		sortOrder = filters.SortOrder
	}

	records, total, err := b.db.ListRecords(domain, db.ListOptions{
		Type:      string(filters.Type),
		Name:      filters.Name,
		IsActive:  filters.IsActive,
		Offset:    (pageNum - 1) * limit,
		Limit:     limit,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	})
	if err != nil {
		return page, model.StorageError(err)
	}

	page.Records = make([]model.RecordResponse, 0, len(records))
	for i := range records {
		page.Records = append(page.Records, toRecordResponse(&records[i]))
	}
	page.Pagination = model.Pagination{
		Total: total,
		Page:  pageNum,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
		Limit: limit,
	}
	return page, nil
}

func (b *backend) GetStats(actor model.Actor, domain string) (model.DomainStats, error) {
	var stats model.DomainStats

	if err := canView(b.db, actor, domain); err != nil {
		return stats, err
	}

	total, active, err := b.db.CountRecords(domain)
	if err != nil {
		return stats, model.StorageError(err)
	}
	byType, err := b.db.CountRecordsByType(domain)
	if err != nil {
		return stats, model.StorageError(err)
	}

	return model.DomainStats{
		TotalRecords:    total,
		ActiveRecords:   active,
		InactiveRecords: total - active,
		RecordsByType:   byType,
	}, nil
}

func (b *backend) ListUserDomains(actor model.Actor) ([]string, error) {
	domains, err := b.db.ListUserDomains(actor.UserID)
	if err != nil {
		return nil, model.StorageError(err)
	}
	return domains, nil
}

func toRecordResponse(rec *db.DNSRecord) model.RecordResponse {
	return model.RecordResponse{
		ID:        rec.ID,
		Domain:    rec.Domain,
		Type:      model.RecordType(rec.Type),
		Name:      rec.Name,
		Value:     rec.Value,
		TTL:       rec.TTL,
		Priority:  rec.Priority,
		Comment:   rec.Comment,
		IsActive:  rec.IsActive,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
