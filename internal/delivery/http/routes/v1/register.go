package v1

import (
	"log"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/infrastructure/skills"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// Register wires the v1 job board surface under r. Reads are public with an
// optional identity; writes require an admin token.
func Register(r fiber.Router, cfg config.Config, db database.DB, directory skills.Directory, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	companyRepo := repository.NewPostgresCompanyRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	reqRepo := repository.NewPostgresSkillRequirementRepository(db)

	companyUC := usecase.NewCompanyUsecase(companyRepo)
	jobUC := usecase.NewJobUsecase(jobRepo, reqRepo, companyRepo, directory, logger)

	companyHandler := handler.NewCompanyHandler(companyUC)
	jobHandler := handler.NewJobHandler(jobUC)

	board := r.Group("/jobboard")

	jobsPublic := board.Group("/jobs", authMw.Optional())
	jobHandler.RegisterPublicRoutes(jobsPublic)

	jobsAdmin := board.Group("/jobs", authMw.RequireAdmin())
	jobHandler.RegisterAdminRoutes(jobsAdmin)

	companies := board.Group("/companies", authMw.RequireAdmin())
	companyHandler.RegisterRoutes(companies)
}
