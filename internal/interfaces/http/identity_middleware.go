package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/FarmaPOS-api/internal/application/dto"
	"github.com/jhoicas/FarmaPOS-api/internal/domain"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/authz"
	"github.com/jhoicas/FarmaPOS-api/pkg/jwt"
)

// Locals key para la identidad en Fiber.
const LocalIdentity = "identity"

// Headers de suplantación de alcance: permiten a un superadmin acotar su
// visibilidad global a una empresa o sucursal concreta durante la petición.
const (
	HeaderActingCompany = "X-Acting-Company"
	HeaderActingBranch  = "X-Acting-Branch"
)

// branchCompanyResolver es lo mínimo que el middleware necesita del grafo de
// tenencia para validar un override de sucursal.
type branchCompanyResolver interface {
	CompanyOfBranch(ctx context.Context, branchID string) (string, error)
}

// IdentityMiddleware valida el Bearer Token JWT, arma la identidad completa
// (rol + coordenadas de tenencia) y procesa los headers de override de
// alcance. Un override de sucursal exige también el de empresa y que la
// sucursal pertenezca a esa empresa; todo lo demás se rechaza antes del
// handler.
func IdentityMiddleware(jwtSecret string, graph branchCompanyResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		id := authz.Identity{
			UserID:    claims.UserID,
			Role:      authz.Role(claims.Role),
			CompanyID: claims.CompanyID,
			BranchID:  claims.BranchID,
		}
		if !id.Role.Valid() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "rol desconocido en el token"})
		}

		actingCompany := strings.TrimSpace(c.Get(HeaderActingCompany))
		actingBranch := strings.TrimSpace(c.Get(HeaderActingBranch))
		if actingCompany != "" || actingBranch != "" {
			// Solo superadmin y admin (sobre sus propias empresas, lo
			// verifica el resolver de alcance) pueden acotar su vista.
			if id.Role != authz.RoleSuperAdmin && id.Role != authz.RoleAdmin {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "INVALID_OVERRIDE", Message: "el rol no admite override de alcance"})
			}
			if actingBranch != "" {
				if actingCompany == "" {
					return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_OVERRIDE", Message: "X-Acting-Branch requiere X-Acting-Company"})
				}
				companyID, err := graph.CompanyOfBranch(c.UserContext(), actingBranch)
				if err != nil {
					if errors.Is(err, domain.ErrNotFound) {
						return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_OVERRIDE", Message: "sucursal de override inexistente"})
					}
					return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
				}
				if companyID != actingCompany {
					return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_OVERRIDE", Message: "la sucursal no pertenece a la empresa indicada"})
				}
			}
			id.ActingCompanyID = actingCompany
			id.ActingBranchID = actingBranch
		}

		c.Locals(LocalIdentity, id)
		return c.Next()
	}
}

// IdentityFromCtx devuelve la identidad del contexto (después del middleware).
func IdentityFromCtx(c *fiber.Ctx) authz.Identity {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return authz.Identity{}
	}
	id, _ := v.(authz.Identity)
	return id
}
