package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rotaplan/roster-backend/internal/config"
	"github.com/rotaplan/roster-backend/internal/domain"
	"github.com/rotaplan/roster-backend/internal/repository"
	"github.com/rotaplan/roster-backend/internal/roster"
	"github.com/rotaplan/roster-backend/internal/rostergen"
	"github.com/rotaplan/roster-backend/internal/solver"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	assembler   *roster.Assembler
	solver      *solver.Manager
	generator   *rostergen.Generator

	Mux *chi.Mux
}

func NewHandler(
	cfg *config.Config,
	repo *repository.Repository,
	mailCh *amqp.Channel,
	rdb *redis.Client,
	assembler *roster.Assembler,
	solverManager *solver.Manager,
	generator *rostergen.Generator,
) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		assembler:   assembler,
		solver:      solverManager,
		generator:   generator,

		Mux: chi.NewRouter(),
	}, nil
}

// planners covers every role allowed to mutate roster data.
var planners = []domain.Role{domain.RoleAdmin, domain.RolePlanner}
var adminsOnly = []domain.Role{domain.RoleAdmin}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a logged-in user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole(adminsOnly)).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUsers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole(adminsOnly)).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole(adminsOnly)).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole(adminsOnly)).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/tenants", func(r chi.Router) {
			r.Get("/", h.GetAllTenants)
			r.With(h.RequiredRole(adminsOnly)).Post("/", h.CreateTenant)
			r.With(h.RequiredRole(adminsOnly)).Post("/demo", h.CreateDemoTenant)

			r.Route("/{tenantID}", func(r chi.Router) {
				r.Use(h.tenant)
				r.Get("/", h.GetTenant)
				r.With(h.RequiredRole(adminsOnly)).Delete("/", h.DeleteTenant)
				r.Get("/rosterState", h.GetRosterState)

				r.Route("/skills", func(r chi.Router) {
					r.Get("/", h.GetAllSkills)
					r.With(h.RequiredRole(planners)).Post("/", h.CreateSkill)
					r.Route("/{id}", func(r chi.Router) {
						r.Use(h.skill)
						r.Get("/", h.GetSkill)
						r.With(h.RequiredRole(planners)).Put("/", h.UpdateSkill)
						r.With(h.RequiredRole(planners)).Delete("/", h.DeleteSkill)
					})
				})

				r.Route("/spots", func(r chi.Router) {
					r.Get("/", h.GetAllSpots)
					r.With(h.RequiredRole(planners)).Post("/", h.CreateSpot)
					r.Route("/{id}", func(r chi.Router) {
						r.Use(h.spot)
						r.Get("/", h.GetSpot)
						r.With(h.RequiredRole(planners)).Put("/", h.UpdateSpot)
						r.With(h.RequiredRole(planners)).Delete("/", h.DeleteSpot)
					})
				})

				r.Route("/contracts", func(r chi.Router) {
					r.Get("/", h.GetAllContracts)
					r.With(h.RequiredRole(planners)).Post("/", h.CreateContract)
					r.Route("/{id}", func(r chi.Router) {
						r.Use(h.contract)
						r.Get("/", h.GetContract)
						r.With(h.RequiredRole(planners)).Put("/", h.UpdateContract)
						r.With(h.RequiredRole(planners)).Delete("/", h.DeleteContract)
					})
				})

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.GetAllEmployees)
					r.With(h.RequiredRole(planners)).Post("/", h.CreateEmployee)
					r.Route("/{id}", func(r chi.Router) {
						r.Use(h.employee)
						r.Get("/", h.GetEmployee)
						r.With(h.RequiredRole(planners)).Put("/", h.UpdateEmployee)
						r.With(h.RequiredRole(planners)).Delete("/", h.DeleteEmployee)
					})
				})

				r.Route("/availabilities", func(r chi.Router) {
					r.Get("/", h.GetAllAvailabilities)
					r.With(h.RequiredRole(planners)).Post("/", h.CreateAvailability)
					r.Route("/{id}", func(r chi.Router) {
						r.Use(h.availability)
						r.Get("/", h.GetAvailability)
						r.With(h.RequiredRole(planners)).Put("/", h.UpdateAvailability)
						r.With(h.RequiredRole(planners)).Delete("/", h.DeleteAvailability)
					})
				})

				r.Route("/rotation", func(r chi.Router) {
					r.Get("/", h.GetAllShiftTemplates)
					r.With(h.RequiredRole(planners)).Post("/", h.CreateShiftTemplate)
					r.Route("/{id}", func(r chi.Router) {
						r.Use(h.shiftTemplate)
						r.Get("/", h.GetShiftTemplate)
						r.With(h.RequiredRole(planners)).Put("/", h.UpdateShiftTemplate)
						r.With(h.RequiredRole(planners)).Delete("/", h.DeleteShiftTemplate)
					})
				})

				r.Route("/shifts", func(r chi.Router) {
					r.Get("/", h.GetAllShifts)
					r.With(h.RequiredRole(planners)).Post("/", h.CreateShift)
					r.Route("/{id}", func(r chi.Router) {
						r.Use(h.shift)
						r.Get("/", h.GetShift)
						r.With(h.RequiredRole(planners)).Put("/", h.UpdateShift)
						r.With(h.RequiredRole(planners)).Delete("/", h.DeleteShift)
					})
				})

				r.Route("/roster", func(r chi.Router) {
					r.Get("/shiftRosterView", h.GetShiftRosterView)
					r.Get("/availabilityRosterView", h.GetAvailabilityRosterView)
					r.With(h.RequiredRole(planners)).Post("/solve", h.SolveRoster)
					r.With(h.RequiredRole(planners)).Post("/terminate", h.TerminateRosterSolve)
					r.With(h.RequiredRole(planners)).Post("/publishAndProvision", h.PublishAndProvision)
				})
			})
		})
	})
}
