package claimservice

import (
	"log/slog"
	"time"

	httpadapter "claimdesk/contexts/creator-earnings/claim-service/adapters/http"
	"claimdesk/contexts/creator-earnings/claim-service/adapters/memory"
	"claimdesk/contexts/creator-earnings/claim-service/adapters/noop"
	"claimdesk/contexts/creator-earnings/claim-service/application/commands"
	"claimdesk/contexts/creator-earnings/claim-service/application/queries"
	"claimdesk/contexts/creator-earnings/claim-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Claims   ports.ClaimRepository
	Posts    ports.PostReader
	Rates    ports.RateReader
	Notifier ports.Notifier
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	LockTTL  time.Duration
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createClaim := commands.CreateClaimUseCase{
		Claims:   deps.Claims,
		Posts:    deps.Posts,
		Rates:    deps.Rates,
		Notifier: deps.Notifier,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	applyDeduction := commands.ApplyDeductionUseCase{
		Claims:   deps.Claims,
		Notifier: deps.Notifier,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	respondToDeduction := commands.RespondToDeductionUseCase{
		Claims:   deps.Claims,
		Notifier: deps.Notifier,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	reviewClaim := commands.ReviewClaimUseCase{
		Claims:   deps.Claims,
		Notifier: deps.Notifier,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	adminApprove := commands.AdminApproveUseCase{
		Claims:   deps.Claims,
		Notifier: deps.Notifier,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	lockClaim := commands.LockClaimUseCase{
		Claims:   deps.Claims,
		Notifier: deps.Notifier,
		Clock:    deps.Clock,
		LockTTL:  deps.LockTTL,
		Logger:   deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Claims: deps.Claims,
		Posts:  deps.Posts,
		Logger: deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateClaim:        createClaim,
			ApplyDeduction:     applyDeduction,
			RespondToDeduction: respondToDeduction,
			ReviewClaim:        reviewClaim,
			AdminApprove:       adminApprove,
			LockClaim:          lockClaim,
			Queries:            queryUseCase,
			Logger:             deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module against the in-memory store with a
// no-op notifier. Seed posts and an optional active rate are installed
// before any claim is accepted.
func NewInMemoryModule(seedPosts []ports.PostForClaim, rate *ports.RateConfiguration, logger *slog.Logger) Module {
	store := memory.NewStore(seedPosts, rate)
	module := NewModule(Dependencies{
		Claims:   store,
		Posts:    store,
		Rates:    store,
		Notifier: noop.Notifier{},
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
