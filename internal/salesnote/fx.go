package salesnote

import (
	"github.com/smallbiznis/notaventa/internal/salesnote/artifacts"
	"github.com/smallbiznis/notaventa/internal/salesnote/repository"
	"github.com/smallbiznis/notaventa/internal/salesnote/service"
	"go.uber.org/fx"
)

var Module = fx.Module("salesnote.service",
	fx.Provide(repository.Provide),
	fx.Provide(artifacts.New),
	fx.Provide(service.New),
)
