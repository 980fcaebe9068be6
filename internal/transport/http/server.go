package http

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/light-bringer/storefront-catalog/internal/pkg/reqscope"
	"github.com/light-bringer/storefront-catalog/internal/transport/dto"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-ID"

// NewApp builds the fiber app with middleware, error mapping and routes.
func NewApp(h *Handler, logger *slog.Logger) *fiber.App {
	if logger == nil {
		logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:               "storefront-catalog",
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(logger),
	})
	app.Use(RequestScope(logger))

	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes mounts the catalog routes under /api/v1.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/healthz", h.Health)

	v1 := app.Group("/api/v1")

	// products
	v1.Get("/products", h.ListProducts)
	v1.Post("/products", h.CreateProduct)
	v1.Get("/products/:id", h.GetProduct)
	v1.Put("/products/:id", h.UpdateProduct)
	v1.Delete("/products/:id", h.DeleteProduct)
	v1.Get("/products/:id/categories", h.ProductCategories)

	// lookups
	v1.Get("/brands/names", h.BrandNames)
	v1.Get("/categories/by-product", h.CategoriesByProduct)
}

// RequestScope installs a reqscope.Scope for the request and logs it once
// the handler chain returns.
func RequestScope(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)
		c.SetUserContext(reqscope.WithScope(c.UserContext(), reqscope.NewWithID(id)))

		err := c.Next()
		if err != nil {
			// Write the mapped response now so the logged status is final.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				return herr
			}
		}

		logger.InfoContext(c.UserContext(), "http request",
			"request_id", id,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start),
		)
		return nil
	}
}

// ErrorHandler writes errors in the {"error": {"code", "message"}} envelope.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := dto.CodeValidation
			switch {
			case fe.Code == fiber.StatusNotFound:
				code = dto.CodeNotFound
			case fe.Code >= fiber.StatusInternalServerError:
				code = dto.CodeInternal
			}
			return c.Status(fe.Code).JSON(dto.ErrorBody{Error: dto.ErrorDetail{Code: code, Message: fe.Message}})
		}

		status := StatusCode(err)
		if status >= fiber.StatusInternalServerError {
			logger.ErrorContext(c.UserContext(), "request failed", "path", c.Path(), "error", err)
		}
		return c.Status(status).JSON(dto.NewErrorBody(err))
	}
}

// StatusCode maps an error category onto an HTTP status.
func StatusCode(err error) int {
	switch dto.ErrorCode(err) {
	case dto.CodeValidation:
		return fiber.StatusBadRequest
	case dto.CodeNotFound:
		return fiber.StatusNotFound
	case dto.CodeConstraint, dto.CodeTransaction:
		return fiber.StatusConflict
	case dto.CodeUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
