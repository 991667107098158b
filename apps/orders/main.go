package main

import (
	"github.com/smallbiznis/notaventa/internal/address"
	"github.com/smallbiznis/notaventa/internal/blobstore"
	"github.com/smallbiznis/notaventa/internal/config"
	"github.com/smallbiznis/notaventa/internal/customer"
	"github.com/smallbiznis/notaventa/internal/kvstore"
	"github.com/smallbiznis/notaventa/internal/observability"
	"github.com/smallbiznis/notaventa/internal/product"
	"github.com/smallbiznis/notaventa/internal/providers/pdf"
	"github.com/smallbiznis/notaventa/internal/pubsub"
	"github.com/smallbiznis/notaventa/internal/redisconn"
	"github.com/smallbiznis/notaventa/internal/salesnote"
	"github.com/smallbiznis/notaventa/internal/server"
	"go.uber.org/fx"
)

// The orders service runs the note workflow: validation against the catalogs,
// persistence, PDF rendering, artifact storage and notification publishing.
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

		server.Module,
		fx.Invoke(func(s *server.Server) {
			s.RegisterOrderRoutes()
		}),
	)
	app.Run()
}
