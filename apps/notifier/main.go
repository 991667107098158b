package main

import (
	"github.com/smallbiznis/notaventa/internal/config"
	"github.com/smallbiznis/notaventa/internal/notifier"
	"github.com/smallbiznis/notaventa/internal/observability"
	"github.com/smallbiznis/notaventa/internal/providers/email"
	"github.com/smallbiznis/notaventa/internal/redisconn"
	"github.com/smallbiznis/notaventa/internal/server"
	"go.uber.org/fx"
)

// The notifier consumes order notifications from the topic and relays them as
// email. It serves no domain routes; the HTTP server only exposes health and
// metrics.
func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		redisconn.Module,

		email.Module,
		notifier.Module,

		server.Module,
	)
	app.Run()
}
