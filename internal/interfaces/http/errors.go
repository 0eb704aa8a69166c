package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/FarmaPOS-api/internal/application/dto"
	"github.com/jhoicas/FarmaPOS-api/internal/domain"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/authz"
)

// respondError traduce errores de dominio a respuestas HTTP. Las denegaciones
// del motor llegan con código de razón (OUT_OF_SCOPE, INVALID_ROLE_ASSIGNMENT,
// MISSING_BRANCH) y se exponen tal cual para que el cliente distinga el fallo
// corregible del incidente de permisos.
func respondError(c *fiber.Ctx, err error) error {
	var denied *authz.DeniedError
	if errors.As(err, &denied) {
		code := string(denied.Reason)
		if code == "" {
			code = "FORBIDDEN"
		}
		status := fiber.StatusForbidden
		// Fallos de validación corregibles por el cliente, no incidentes.
		if denied.Reason == authz.ReasonInvalidRoleAssignment || denied.Reason == authz.ReasonMissingBranch {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: denied.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrNeedsOnboarding):
		// Estado legítimo: el admin debe crear su empresa primero.
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ONBOARDING_REQUIRED", Message: "cree su empresa para continuar"})
	case errors.Is(err, domain.ErrCompanyNotConfigured):
		// Estado legítimo: falta definir el tipo de negocio de la empresa.
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COMPANY_NOT_CONFIGURED", Message: "configure el tipo de negocio de la empresa para operar"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// pageParams lee limit/offset con los topes del API.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
