package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/maplegrove-coc/duty-roster/backend/internal/config"
	"github.com/maplegrove-coc/duty-roster/backend/internal/domain"
	"github.com/maplegrove-coc/duty-roster/backend/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
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

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
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

	// Everything below requires a valid session.
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
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdministrator}))
			r.Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/members", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleCoordinator, domain.RoleAdministrator})).Post("/", h.CreateMember)
			r.Get("/", h.GetAllMembers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.memberCtx)
				r.Get("/", h.GetMember)
				r.With(h.RequiredRole([]domain.Role{domain.RoleCoordinator, domain.RoleAdministrator})).Patch("/", h.UpdateMember)
				r.With(h.RequiredRole([]domain.Role{domain.RoleCoordinator, domain.RoleAdministrator})).Delete("/", h.DeleteMember)
				r.With(h.RequiredRole([]domain.Role{domain.RoleCoordinator, domain.RoleAdministrator})).Put("/duties", h.ReplaceMemberDuties)
			})
		})

		r.Route("/duty-types", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleCoordinator, domain.RoleAdministrator})).Post("/", h.CreateDutyType)
			r.Get("/", h.GetAllDutyTypes)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.dutyTypeCtx)
				r.Get("/", h.GetDutyType)
				r.With(h.RequiredRole([]domain.Role{domain.RoleCoordinator, domain.RoleAdministrator})).Patch("/", h.UpdateDutyType)
				r.With(h.RequiredRole([]domain.Role{domain.RoleCoordinator, domain.RoleAdministrator})).Delete("/", h.DeleteDutyType)
			})
		})

		r.Route("/schedules", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleCoordinator, domain.RoleAdministrator})).Post("/generate", h.GenerateSchedule)
			r.Get("/", h.GetAllSchedules)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.scheduleCtx)
				r.Get("/", h.GetSchedule)
				r.With(h.RequiredRole([]domain.Role{domain.RoleCoordinator, domain.RoleAdministrator})).Delete("/", h.DeleteSchedule)
				r.With(h.RequiredRole([]domain.Role{domain.RoleCoordinator, domain.RoleAdministrator})).Put("/assignments", h.UpsertAssignment)
			})
		})
	})
}
