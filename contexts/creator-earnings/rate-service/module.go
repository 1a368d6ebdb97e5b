package rateservice

import (
	"log/slog"

	httpadapter "claimdesk/contexts/creator-earnings/rate-service/adapters/http"
	"claimdesk/contexts/creator-earnings/rate-service/adapters/memory"
	"claimdesk/contexts/creator-earnings/rate-service/application"
	"claimdesk/contexts/creator-earnings/rate-service/domain/entities"
	"claimdesk/contexts/creator-earnings/rate-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(active *entities.RateConfiguration, logger *slog.Logger) Module {
	store := memory.NewStore(active)
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
