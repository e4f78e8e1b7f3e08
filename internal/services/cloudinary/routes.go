package cloudinary

import (
	"github.com/gofiber/fiber/v3"
)

// SetupRoutes настраивает маршруты для загрузки изображений
func SetupRoutes(app *fiber.App, authMiddleware fiber.Handler, cloudinaryService *CloudinaryService) {
	api := app.Group("/api")

	protected := api.Group("/")
	protected.Use(authMiddleware)

	// Параметры для прямой загрузки изображений в Cloudinary
	protected.Get("/upload/params", cloudinaryService.GenerateUploadParams)
}
