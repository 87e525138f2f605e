package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/cheeseshop/pkg/cache"
	"github.com/ghuser/cheeseshop/pkg/database"
	"github.com/ghuser/cheeseshop/pkg/events"
	"github.com/ghuser/cheeseshop/pkg/logger"
)

// Application holds shared infrastructure passed to each bounded context's
// route registration.
//
// Logger is trace-aware: prefer the context methods so trace_id, span_id and
// request_id are attached.
//
//	app.Logger.InfoContext(ctx, "listing published", "listing_id", id)
type Application struct {
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient // nil disables the listing cache
	SessionStore sessions.Store     // nil in the worker process
}
