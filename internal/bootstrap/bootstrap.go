package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/Calabangata/Graduation-System/internal/app/controllers"
	appMigrations "github.com/Calabangata/Graduation-System/internal/app/migrations"
	appRepos "github.com/Calabangata/Graduation-System/internal/app/repositories"
	appRoutes "github.com/Calabangata/Graduation-System/internal/app/routes"
	appServices "github.com/Calabangata/Graduation-System/internal/app/services"
	"github.com/Calabangata/Graduation-System/internal/config"
	"github.com/Calabangata/Graduation-System/internal/db"
	appMiddleware "github.com/Calabangata/Graduation-System/internal/middleware"
	pkgAuth "github.com/Calabangata/Graduation-System/internal/pkg/auth"
	"github.com/Calabangata/Graduation-System/internal/pkg/helpers"
	"github.com/Calabangata/Graduation-System/internal/pkg/logger"
	"github.com/Calabangata/Graduation-System/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           *appServices.AuthService
	DepartmentService     *appServices.DepartmentService
	ApplicationService    *appServices.ApplicationService
	StatementService      *appServices.StatementService
	ReviewService         *appServices.ReviewService
	DefenceService        *appServices.DefenceService
	UserService           *appServices.UserService
	AuthController        *appControllers.AuthController
	DepartmentController  *appControllers.DepartmentController
	ApplicationController *appControllers.ApplicationController
	StatementController   *appControllers.StatementController
	ReviewController      *appControllers.ReviewController
	DefenceController     *appControllers.DefenceController
	UserController        *appControllers.UserController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, cfg); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		database,
		deps.Repos.UserRepository,
		deps.Repos.StudentRepository,
		deps.Repos.TeacherRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)

	deps.DepartmentService = appServices.NewDepartmentService(
		database,
		deps.Repos.DepartmentRepository,
		deps.Repos.TeacherRepository,
	)

	deps.ApplicationService = appServices.NewApplicationService(
		database,
		deps.Repos.StudentRepository,
		deps.Repos.TeacherRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.ApprovalRepository,
		deps.Repos.VoteRepository,
		deps.Repos.StatementRepository,
	)

	deps.StatementService = appServices.NewStatementService(
		database,
		deps.Repos.ApplicationRepository,
		deps.Repos.ApprovalRepository,
		deps.Repos.StatementRepository,
		deps.Repos.ReviewRepository,
		deps.Repos.StudentRepository,
		deps.Repos.TeacherRepository,
		deps.Repos.DefenceRepository,
	)

	deps.ReviewService = appServices.NewReviewService(
		database,
		deps.Repos.StatementRepository,
		deps.Repos.ReviewRepository,
		deps.Repos.TeacherRepository,
	)

	deps.DefenceService = appServices.NewDefenceService(
		database,
		deps.Repos.DefenceRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.StudentRepository,
		deps.Repos.TeacherRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.StatementRepository,
		deps.Repos.ReviewRepository,
	)

	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		deps.Repos.StudentRepository,
		deps.Repos.TeacherRepository,
		deps.Repos.DepartmentRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.DepartmentService)
	deps.ApplicationController = appControllers.NewApplicationController(deps.ApplicationService)
	deps.StatementController = appControllers.NewStatementController(deps.StatementService)
	deps.ReviewController = appControllers.NewReviewController(deps.ReviewService)
	deps.DefenceController = appControllers.NewDefenceController(deps.DefenceService)
	deps.UserController = appControllers.NewUserController(deps.UserService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.DepartmentController,
		deps.ApplicationController,
		deps.StatementController,
		deps.ReviewController,
		deps.DefenceController,
		deps.UserController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
