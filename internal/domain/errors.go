package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrNeedsOnboarding no es un fallo: el admin autenticado aún no tiene
	// empresa propia y debe completar el onboarding antes de operar.
	ErrNeedsOnboarding = errors.New("requiere onboarding: sin empresa propia")

	// ErrCompanyNotConfigured bloquea la operación diaria: la empresa existe
	// pero aún no definió su tipo de negocio.
	ErrCompanyNotConfigured = errors.New("empresa sin configurar")
)
