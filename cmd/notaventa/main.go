package main

import (
	"github.com/smallbiznis/notaventa/internal/address"
	"github.com/smallbiznis/notaventa/internal/blobstore"
	"github.com/smallbiznis/notaventa/internal/config"
	"github.com/smallbiznis/notaventa/internal/customer"
	"github.com/smallbiznis/notaventa/internal/kvstore"
	"github.com/smallbiznis/notaventa/internal/notifier"
	"github.com/smallbiznis/notaventa/internal/observability"
	"github.com/smallbiznis/notaventa/internal/product"
	"github.com/smallbiznis/notaventa/internal/providers/email"
	"github.com/smallbiznis/notaventa/internal/providers/pdf"
	"github.com/smallbiznis/notaventa/internal/pubsub"
	"github.com/smallbiznis/notaventa/internal/redisconn"
	"github.com/smallbiznis/notaventa/internal/salesnote"
	"github.com/smallbiznis/notaventa/internal/server"
	"go.uber.org/fx"
)

// Single-process deployment: catalogs, orders and the notifier in one app.
// Production runs them separately from apps/.
func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		redisconn.Module,
		kvstore.Module,
		blobstore.Module,
		pubsub.Module,

		customer.Module,
		address.Module,
		product.Module,
		pdf.Module,
		salesnote.Module,
		email.Module,
		notifier.Module,

		server.Module,
		fx.Invoke(func(s *server.Server) {
			s.RegisterCatalogRoutes()
			s.RegisterOrderRoutes()
		}),
	)
	app.Run()
}
