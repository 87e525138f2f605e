package services

import (
	"github.com/ghuser/cheeseshop/pkg/app"
	"github.com/ghuser/cheeseshop/pkg/cache"
	"github.com/ghuser/cheeseshop/pkg/telemetry"
	"github.com/ghuser/cheeseshop/services/cheese/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the cheese context.
type Services struct {
	Listings *ListingService
	Users    *UserService
}

// New wires the cheese services with infrastructure from the Application
// container. Without Redis the listing cache is disabled.
func New(a *app.Application) *Services {
	users := postgres.NewUserRepository(a.Db)
	listings := postgres.NewCheeseListingRepository(a.Db, a.EventBus)

	var listingCache ListingCache
	if a.Redis != nil {
		listingCache = cache.NewListingCache(a.Redis)
	}

	metrics, err := telemetry.NewListingMetrics()
	if err != nil {
		a.Logger.Error("listing metrics disabled", "error", err)
	}

	return &Services{
		Listings: NewListingService(listings, users, listingCache, metrics, a.Logger),
		Users:    NewUserService(users),
	}
}
