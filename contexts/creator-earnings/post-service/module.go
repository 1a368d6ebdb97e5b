package postservice

import (
	"log/slog"

	httpadapter "claimdesk/contexts/creator-earnings/post-service/adapters/http"
	"claimdesk/contexts/creator-earnings/post-service/adapters/memory"
	"claimdesk/contexts/creator-earnings/post-service/application/commands"
	"claimdesk/contexts/creator-earnings/post-service/application/queries"
	"claimdesk/contexts/creator-earnings/post-service/domain/entities"
	"claimdesk/contexts/creator-earnings/post-service/ports"
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
	managePost := commands.ManagePostUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			ManagePost: managePost,
			Queries:    queryUseCase,
			Logger:     deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Post, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
