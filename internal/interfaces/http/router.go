package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/FarmaPOS-api/internal/application/auth"
	"github.com/jhoicas/FarmaPOS-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	CompanyUC *usecase.CompanyUseCase
	BranchUC  *usecase.BranchUseCase
	UserUC    *usecase.UserUseCase
	ShiftUC   *usecase.ShiftUseCase
	SaleUC    *usecase.SaleUseCase
	JWTSecret string
	Graph     branchCompanyResolver
}

// Router registra las rutas de la API. Todo excepto el login exige Bearer
// Token: la identidad completa viaja en el JWT y el middleware la deja en
// Locals para los handlers.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", IdentityMiddleware(deps.JWTSecret, deps.Graph))

	// Companies
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	// Branches
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Get("/", branchHandler.List)
	branches.Post("/", branchHandler.Create)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id", branchHandler.Update)

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/:id/activate", userHandler.Activate)
	users.Post("/:id/deactivate", userHandler.Deactivate)
	users.Delete("/:id", userHandler.Delete)
	users.Delete("/:id/cascade", userHandler.DeleteAdmin)

	// Shifts
	shifts := protected.Group("/shifts")
	shiftHandler := NewShiftHandler(deps.ShiftUC)
	shifts.Get("/", shiftHandler.List)
	shifts.Post("/", shiftHandler.Create)
	shifts.Get("/:id", shiftHandler.GetByID)
	shifts.Put("/:id", shiftHandler.Update)
	shifts.Delete("/:id", shiftHandler.Delete)

	// Sales
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Create)
	sales.Get("/:id", saleHandler.GetByID)
}
