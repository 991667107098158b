package main

import (
	"github.com/smallbiznis/notaventa/internal/address"
	"github.com/smallbiznis/notaventa/internal/config"
	"github.com/smallbiznis/notaventa/internal/customer"
	"github.com/smallbiznis/notaventa/internal/kvstore"
	"github.com/smallbiznis/notaventa/internal/observability"
	"github.com/smallbiznis/notaventa/internal/product"
	"github.com/smallbiznis/notaventa/internal/redisconn"
	"github.com/smallbiznis/notaventa/internal/server"
	"go.uber.org/fx"
)

// The catalog service only serves the customer, address and product CRUD
// surface; notes and notifications run in their own processes.
func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		redisconn.Module,
		kvstore.Module,

		customer.Module,
		address.Module,
		product.Module,

		server.Module,
		fx.Invoke(func(s *server.Server) {
			s.RegisterCatalogRoutes()
		}),
	)
	app.Run()
}
