package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zonekit/zonekit/pkg/db"
	"github.com/zonekit/zonekit/pkg/db/dbtest"
	"github.com/zonekit/zonekit/pkg/model"
)

func seedStore() *dbtest.Memory {
	store := dbtest.New()
	_ = store.CreateZone(&db.Zone{Domain: "shop.example.com", OwnerUserID: 1, Status: string(model.ZoneStatusActive)})
	_ = store.CreateMembership(&db.DomainMembership{
		Domain: "shop.example.com", UserID: 2, Role: string(model.RoleViewer), Status: string(model.MembershipActive),
	})
	_ = store.CreateMembership(&db.DomainMembership{
		Domain: "shop.example.com", UserID: 3, Role: string(model.RoleEditor), Status: string(model.MembershipActive),
	})
	_ = store.CreateMembership(&db.DomainMembership{
		Domain: "shop.example.com", UserID: 4, Role: string(model.RoleAdmin), Status: string(model.MembershipActive),
	})
	_ = store.CreateMembership(&db.DomainMembership{
		Domain: "shop.example.com", UserID: 5, Role: string(model.RoleAdmin), Status: string(model.MembershipPending),
	})
	return store
}

func TestResolveRoleOrdering(t *testing.T) {
	store := seedStore()

	tests := []struct {
		name     string
		actor    model.Actor
		required model.Role
		wantKind model.Kind
	}{
		{"viewer can view", model.Actor{UserID: 2}, model.RoleViewer, ""},
		{"viewer cannot edit", model.Actor{UserID: 2}, model.RoleEditor, model.KindForbidden},
		{"viewer cannot admin", model.Actor{UserID: 2}, model.RoleAdmin, model.KindForbidden},
		{"editor can view", model.Actor{UserID: 3}, model.RoleViewer, ""},
		{"editor can edit", model.Actor{UserID: 3}, model.RoleEditor, ""},
		{"editor cannot admin", model.Actor{UserID: 3}, model.RoleAdmin, model.KindForbidden},
		{"admin member can admin", model.Actor{UserID: 4}, model.RoleAdmin, ""},
		{"owner holds implicit admin", model.Actor{UserID: 1}, model.RoleAdmin, ""},
		{"global admin bypasses roles", model.Actor{UserID: 99, IsGlobalAdmin: true}, model.RoleAdmin, ""},
		{"pending membership grants nothing", model.Actor{UserID: 5}, model.RoleViewer, model.KindForbidden},
		{"stranger is forbidden", model.Actor{UserID: 42}, model.RoleViewer, model.KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Resolve(store, tt.actor, "shop.example.com", tt.required)
			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantKind, model.KindOf(err))
			}
		})
	}
}

func TestResolveUnknownDomain(t *testing.T) {
	store := seedStore()

	err := Resolve(store, model.Actor{UserID: 1}, "nope.example.com", model.RoleViewer)
	assert.Equal(t, model.KindNotFound, model.KindOf(err))

	// Global admins see through the not-found veil too; they operate on any
	// domain, existing or not.
	err = Resolve(store, model.Actor{UserID: 9, IsGlobalAdmin: true}, "nope.example.com", model.RoleAdmin)
	assert.NoError(t, err)
}

func TestCanView(t *testing.T) {
	store := seedStore()

	assert.NoError(t, CanView(store, model.Actor{UserID: 2}, "shop.example.com"))
	assert.Error(t, CanView(store, model.Actor{UserID: 42}, "shop.example.com"))
}
