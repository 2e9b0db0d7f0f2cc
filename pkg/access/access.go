// Package access decides whether an actor may operate on a domain, combining
// zone ownership, global-admin status and the viewer < editor < admin role
// ordering sourced from membership rows.
package access

import (
	"github.com/zonekit/zonekit/pkg/db"
	"github.com/zonekit/zonekit/pkg/model"
)

// Store is the slice of persistence the resolver needs.
type Store interface {
	FindZone(domain string) (*db.Zone, error)
	FindMembership(domain string, userID uint) (*db.DomainMembership, error)
}

// Resolve reports whether the actor holds at least the required role on the
// domain. Global admins always pass; the zone owner implicitly holds admin.
// A missing zone resolves to NotFound, everything else to Forbidden.
func Resolve(store Store, actor model.Actor, domain string, required model.Role) error {
	zone, err := store.FindZone(domain)
	if err != nil {
		return model.StorageError(err)
	}
	if zone == nil && !actor.IsGlobalAdmin {
		return model.NotFound("domain %s not found", domain)
	}

	return ResolveZone(store, actor, zone, required)
}

// ResolveZone is Resolve for a zone row the caller already holds, typically
// one locked for update inside a mutation transaction.
func ResolveZone(store Store, actor model.Actor, zone *db.Zone, required model.Role) error {
	if actor.IsGlobalAdmin {
		return nil
	}
	if zone == nil {
		return model.NotFound("domain not found")
	}

	if zone.OwnerUserID == actor.UserID {
		return nil
	}

	membership, err := store.FindMembership(zone.Domain, actor.UserID)
	if err != nil {
		return model.StorageError(err)
	}
	if membership == nil || membership.Status != string(model.MembershipActive) {
		return model.Forbidden("no access to domain %s", zone.Domain)
	}

	if model.Role(membership.Role).Priority() < required.Priority() {
		return model.Forbidden("%s role required for domain %s", required, zone.Domain)
	}

	return nil
}

// CanView is the read-path entry point: the same lookup with the lowest
// required role.
func CanView(store Store, actor model.Actor, domain string) error {
	return Resolve(store, actor, domain, model.RoleViewer)
}
