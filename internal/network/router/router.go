package router

import (
	"github.com/avdeev99/fundplay/internal/config"
	"github.com/avdeev99/fundplay/internal/network/handlers"
	"github.com/avdeev99/fundplay/internal/network/middleware"
	"github.com/avdeev99/fundplay/internal/services"
	"github.com/avdeev99/fundplay/internal/storage"
	"github.com/go-chi/chi/v5"

	"github.com/go-chi/jwtauth/v5"
)

type Router struct {
	Config   config.Config
	Identity services.IdentityService
	Sessions services.SessionService
	Spend    services.SpendService
	TopUps   services.TopUpService
}

func NewRouter(config config.Config, storage storage.Storage) *Router {
	sessions := services.NewSessions(storage.Users, storage.Profiles)
	return &Router{
		Config:   config,
		Identity: services.NewIdentity(config, storage.Users, storage.Profiles),
		Sessions: sessions,
		Spend:    services.NewSpend(sessions, storage.Profiles, storage.Games),
		TopUps:   services.NewTopUp(config.Review.ReviewAddr, storage.TopUps),
	}
}

func (router *Router) HandleRouter() chi.Router {
	ja := router.Identity.GetTokenAuth()
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LogHandle)
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", handlers.RegisterUserHandler(router.Identity, router.Sessions))
			r.Post("/login", handlers.AuthenticateUserHandler(router.Identity, router.Sessions))
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(ja))
				r.Use(jwtauth.Authenticator(ja))
				r.Post("/logout", handlers.LogoutUserHandler(router.Sessions, router.Spend))
				r.Get("/profile", handlers.GetProfileHandler(router.Sessions))
				r.Get("/balance", handlers.GetBalanceHandler(router.Sessions))
			})
		})
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(jwtauth.Authenticator(ja))
			r.Get("/games", handlers.GetGamesHandler(router.Spend))
			r.Post("/games/spend", handlers.PriceSpendHandler(router.Spend))
			r.Post("/games/spend/{intent}/confirm", handlers.ConfirmSpendHandler(router.Spend))
			r.Delete("/games/spend/{intent}", handlers.CancelSpendHandler(router.Spend))
			r.Post("/topup", handlers.SubmitTopUpHandler(router.TopUps))
		})
	})
	return r
}
