package backend

import (
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/wait"
)

// StartInvitePurgerDaemon periodically deletes pending invites that were never
// accepted, so forgotten invites don't linger as latent access grants.
func (b *backend) StartInvitePurgerDaemon(stopCh <-chan struct{}) {
	logrus.Infof("starting invite purge daemon. Purge interval: %vs, max invite age: %vs",
		b.purgeIntervalSeconds, b.inviteMaxAgeSeconds)
	wait.JitterUntil(b.purgeStaleInvites, time.Duration(b.purgeIntervalSeconds)*time.Second, .002, true, stopCh)
}

func (b *backend) purgeStaleInvites() {
	cutoff := time.Now().Add(-time.Second * time.Duration(b.inviteMaxAgeSeconds))

	purged, err := b.db.DeleteStaleInvites(cutoff)
	if err != nil {
		logrus.Errorf("problem purging stale invites: %v", err)
		return
	}
	if purged > 0 {
		logrus.Infof("Stale invites purged: %v", purged)
	}
}
