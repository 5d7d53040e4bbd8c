package store

import (
	"context"
	"errors"

	"glowcheck/internal/models"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("record not found")

// Store is the persistence capability behind accounts and subscriptions.
// Two variants exist: the Postgres store and an in-memory store that is
// substituted when no database is configured. The entry point picks one
// at startup; nothing else probes the environment.
type Store interface {
	// SaveUser upserts by email and fills in the user's id. An empty
	// password hash on an existing user leaves the stored hash alone.
	SaveUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// SaveSubscription inserts one row keyed by the Stripe payment intent
	// id. A duplicate intent id is not an error: the insert is skipped and
	// created is false, which makes webhook redelivery harmless.
	SaveSubscription(ctx context.Context, sub *models.Subscription) (created bool, err error)
	LatestSubscription(ctx context.Context, userID string) (*models.Subscription, error)

	Close()
}

// ProvisionSubscription is the webhook's provisioning step: find or create
// the paying user by email, then record the subscription. Returns whether
// a new subscription row was actually created.
func ProvisionSubscription(ctx context.Context, s Store, email, name, planID, paymentIntentID string) (*models.User, bool, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		user = &models.User{Email: email, Name: name}
		if err := s.SaveUser(ctx, user); err != nil {
			return nil, false, err
		}
	} else if err != nil {
		return nil, false, err
	}

	created, err := s.SaveSubscription(ctx, &models.Subscription{
		UserID:                user.ID,
		PlanID:                planID,
		StripePaymentIntentID: paymentIntentID,
	})
	if err != nil {
		return nil, false, err
	}
	return user, created, nil
}
