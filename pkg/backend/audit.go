package backend

import (
	"encoding/json"

	"github.com/zonekit/zonekit/pkg/db"
	"github.com/zonekit/zonekit/pkg/model"
)

const (
	entityRecord     = "DNSRecord"
	entityZone       = "Zone"
	entityMembership = "DomainMembership"
)

// appendAudit writes one audit entry in the same transaction as the mutation
// it describes; the caller's transaction rolls both back together on failure.
func appendAudit(tx db.Store, actor model.Actor, action model.Action, entityType string, entityID uint, domain string, before, after interface{}) error {
	payload := map[string]interface{}{}
	if before != nil {
		payload["before"] = before
	}
	if after != nil {
		payload["after"] = after
	}

	details, err := json.Marshal(payload)
	if err != nil {
		return model.StorageError(err)
	}

	entry := &db.AuditLogEntry{
		UserID:     actor.UserID,
		Action:     string(action),
		EntityType: entityType,
		EntityID:   entityID,
		Domain:     domain,
		Details:    string(details),
	}
	if err := tx.AppendAuditLog(entry); err != nil {
		return model.StorageError(err)
	}
	return nil
}

func (b *backend) ListAuditLog(actor model.Actor, domain string, limit int) ([]model.AuditEntryResponse, error) {
	if err := canView(b.db, actor, domain); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	entries, err := b.db.ListAuditLog(domain, limit)
	if err != nil {
		return nil, model.StorageError(err)
	}

	out := make([]model.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.AuditEntryResponse{
			ID:         e.ID,
			UserID:     e.UserID,
			Action:     model.Action(e.Action),
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Domain:     e.Domain,
			Details:    e.Details,
			Timestamp:  e.CreatedAt,
		})
	}
	return out, nil
}
