package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"recipe-catalog/internal/api/handlers"
	"recipe-catalog/internal/api/routes"
	"recipe-catalog/internal/middleware"
	"recipe-catalog/internal/utils"
	"recipe-catalog/internal/utils/metrics"
	"recipe-catalog/internal/utils/storage"
	"recipe-catalog/pkg/ingredient"
	"recipe-catalog/pkg/jwt"
	"recipe-catalog/pkg/recipe"
	"recipe-catalog/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Location resolves TIMEZONE, falling back to UTC.
func Location() *time.Location {
	loc, err := time.LoadLocation(utils.GetConfig("TIMEZONE"))
	if err != nil {
		return time.UTC
	}
	return loc
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	return NewAppWithStorage(db, storage.NewAwsS3())
}

func NewAppWithStorage(db *gorm.DB, s3 storage.AwsS3) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName: "recipe-catalog",
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate
	loc := Location()

	// setting up logging and limiter
	logDir := utils.GetConfig("LOG_DIR")
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		filepath.Join(logDir, "app.log"),
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   loc.String(),
		Output:     file,
	}))

	rateLimit, err := strconv.Atoi(utils.GetConfig("RATE_LIMIT"))
	if err != nil || rateLimit < 1 {
		rateLimit = 20
	}
	app.Use(limiter.New(limiter.Config{
		Max:        rateLimit,
		Expiration: 1 * time.Second,
	}))

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return nil, err
	}
	app.Use(metrics.Middleware())

	// Repository
	userRepository := user.NewUserRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db, ingredientRepository)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, s3, loc)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		RecipeHandler:     recipeHandler,
		IngredientHandler: ingredientHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
