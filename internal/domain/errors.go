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
	ErrInsufficientStock  = errors.New("stock insuficiente")

	ErrInvalidTransition         = errors.New("transición de estado inválida")
	ErrCrossTenantReference      = errors.New("referencia entre empresas distintas")
	ErrDuplicatePrimaryWarehouse = errors.New("ya existe una bodega principal para la empresa")
	ErrInvalidMovementQuantity   = errors.New("cantidad de movimiento inválida")
	ErrWarehouseInUse            = errors.New("la bodega tiene stock o traslados abiertos")
)
