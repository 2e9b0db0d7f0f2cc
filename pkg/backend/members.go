package backend

import (
	"github.com/zonekit/zonekit/pkg/access"
	"github.com/zonekit/zonekit/pkg/db"
	"github.com/zonekit/zonekit/pkg/model"
)

// InviteMember adds a pending membership for the user behind email. Admin-level
// access on the domain is required; the invite becomes active once the invitee
// accepts it.
func (b *backend) InviteMember(actor model.Actor, domain, email string, role model.Role) (model.MemberResponse, error) {
	var resp model.MemberResponse

	if err := role.IsValid(); err != nil {
		return resp, model.InvalidInput("role", "%v", err)
	}

	err := b.db.Transaction(func(tx db.Store) error {
		if err := access.Resolve(tx, actor, domain, model.RoleAdmin); err != nil {
			return err
		}

		user, err := tx.FindUserByEmail(email)
		if err != nil {
			return model.StorageError(err)
		}
		if user == nil {
			return model.NotFound("no user with email %s", email)
		}

		zone, err := tx.FindZone(domain)
		if err != nil {
			return model.StorageError(err)
		}
		if zone != nil && zone.OwnerUserID == user.ID {
			return model.Conflict("user %s owns the domain", email)
		}

		existing, err := tx.FindMembership(domain, user.ID)
		if err != nil {
			return model.StorageError(err)
		}
		if existing != nil {
			return model.Conflict("user %s is already a member of %s", email, domain)
		}

		m := &db.DomainMembership{
			Domain:          domain,
			UserID:          user.ID,
			Role:            string(role),
			InvitedByUserID: actor.UserID,
			Status:          string(model.MembershipPending),
		}
		if err := tx.CreateMembership(m); err != nil {
			return model.StorageError(err)
		}

		resp = toMemberResponse(m, user.Email)
		return appendAudit(tx, actor, model.ActionCreate, entityMembership, m.ID, domain, nil, resp)
	})

	return resp, err
}

// AcceptInvite flips a pending membership to active. The only requirement is
// that the invite belongs to the accepting actor.
func (b *backend) AcceptInvite(actor model.Actor, membershipID uint) (model.MemberResponse, error) {
	var resp model.MemberResponse

	err := b.db.Transaction(func(tx db.Store) error {
		m, err := tx.FindMembershipByID(membershipID)
		if err != nil {
			return model.StorageError(err)
		}
		if m == nil {
			return model.NotFound("invite %d not found", membershipID)
		}
		if m.UserID != actor.UserID {
			return model.Forbidden("invite %d does not belong to you", membershipID)
		}
		if m.Status != string(model.MembershipPending) {
			return model.Conflict("invite %d is not pending", membershipID)
		}

		before := toMemberResponse(m, "")
		m.Status = string(model.MembershipActive)
		if err := tx.SaveMembership(m); err != nil {
			return model.StorageError(err)
		}

		resp = toMemberResponse(m, "")
		return appendAudit(tx, actor, model.ActionUpdate, entityMembership, m.ID, m.Domain, before, resp)
	})

	return resp, err
}

func (b *backend) ListMembers(actor model.Actor, domain string) ([]model.MemberResponse, error) {
	if err := canView(b.db, actor, domain); err != nil {
		return nil, err
	}

	memberships, err := b.db.ListMemberships(domain)
	if err != nil {
		return nil, model.StorageError(err)
	}

	out := make([]model.MemberResponse, 0, len(memberships))
	for i := range memberships {
		m := &memberships[i]
		email := ""
		if user, err := b.db.FindUser(m.UserID); err == nil && user != nil {
			email = user.Email
		}
		out = append(out, toMemberResponse(m, email))
	}
	return out, nil
}

func (b *backend) RemoveMember(actor model.Actor, domain string, userID uint) error {
	return b.db.Transaction(func(tx db.Store) error {
		if err := access.Resolve(tx, actor, domain, model.RoleAdmin); err != nil {
			return err
		}

		m, err := tx.FindMembership(domain, userID)
		if err != nil {
			return model.StorageError(err)
		}
		if m == nil {
			return model.NotFound("user %d is not a member of %s", userID, domain)
		}

		if err := tx.DeleteMembership(m.ID); err != nil {
			return model.StorageError(err)
		}

		return appendAudit(tx, actor, model.ActionDelete, entityMembership, m.ID, domain, toMemberResponse(m, ""), nil)
	})
}

func (b *backend) ChangeMemberRole(actor model.Actor, domain string, userID uint, role model.Role) (model.MemberResponse, error) {
	var resp model.MemberResponse

	if err := role.IsValid(); err != nil {
		return resp, model.InvalidInput("role", "%v", err)
	}

	err := b.db.Transaction(func(tx db.Store) error {
		if err := access.Resolve(tx, actor, domain, model.RoleAdmin); err != nil {
			return err
		}

		m, err := tx.FindMembership(domain, userID)
		if err != nil {
			return model.StorageError(err)
		}
		if m == nil {
			return model.NotFound("user %d is not a member of %s", userID, domain)
		}

		before := toMemberResponse(m, "")
		m.Role = string(role)
		if err := tx.SaveMembership(m); err != nil {
			return model.StorageError(err)
		}

		resp = toMemberResponse(m, "")
		return appendAudit(tx, actor, model.ActionUpdate, entityMembership, m.ID, domain, before, resp)
	})

	return resp, err
}

func toMemberResponse(m *db.DomainMembership, email string) model.MemberResponse {
	return model.MemberResponse{
		ID:       m.ID,
		Domain:   m.Domain,
		UserID:   m.UserID,
		Email:    email,
		Role:     model.Role(m.Role),
		Status:   model.MembershipStatus(m.Status),
		JoinedAt: m.CreatedAt,
	}
}
