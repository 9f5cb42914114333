package v1

import (
	"log"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/delivery/http/handler"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/infrastructure/cache"
	"skillswap/internal/notify"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/repository"
	"skillswap/internal/usecase"
	"skillswap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(deps.Config.JWT.AccessSecret, deps.Config.JWT.AccessExpiresIn)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	offeringRepo := repository.NewPostgresOfferingRepository(deps.DB)
	requestRepo := repository.NewPostgresRequestRepository(deps.DB)
	exchangeRepo := repository.NewPostgresExchangeRepository(deps.DB)
	skillRepo := repository.NewPostgresSkillRepository(deps.DB)
	profileRepo := repository.NewPostgresProfileRepository(deps.DB)

	notifier := notify.NewFanout(
		notify.NewLogMailer(deps.Logger),
		ws.NewEventPublisher(deps.Hub),
	)

	offeringUC := usecase.NewOfferingUsecase(offeringRepo, exchangeRepo, skillRepo)
	requestUC := usecase.NewRequestUsecase(requestRepo, exchangeRepo, skillRepo)
	matchingUC := usecase.NewMatchingUsecase(requestRepo, offeringRepo)
	exchangeUC := usecase.NewExchangeUsecase(exchangeRepo, offeringRepo, requestRepo, notifier, deps.Logger)
	skillUC := usecase.NewSkillUsecase(skillRepo, deps.Cache)
	dashboardUC := usecase.NewDashboardUsecase(profileRepo, offeringRepo, requestRepo, exchangeRepo, skillRepo)

	offeringHandler := handler.NewOfferingHandler(offeringUC)
	requestHandler := handler.NewRequestHandler(requestUC, matchingUC)
	exchangeHandler := handler.NewExchangeHandler(exchangeUC)
	skillHandler := handler.NewSkillHandler(skillUC)
	dashboardHandler := handler.NewDashboardHandler(dashboardUC)
	wsHandler := ws.NewHandler(deps.Hub, jwtSvc, deps.Logger)

	// The catalog and the exchange feed authenticate on their own terms;
	// everything else goes through the bearer middleware.
	skillHandler.RegisterCatalog(r)
	r.Get("/ws/exchanges", wsHandler.HandleExchangesWS)

	protected := r.Group("", authMw.Middleware())

	offeringHandler.RegisterRoutes(protected.Group("/offerings"))
	requestHandler.RegisterRoutes(protected.Group("/requests"))
	exchangeHandler.RegisterRoutes(protected.Group("/exchanges"))
	skillHandler.RegisterUserSkills(protected.Group("/users"))
	dashboardHandler.RegisterRoutes(protected)
}
