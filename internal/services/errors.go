package services

import (
	"errors"

	"github.com/Henry-Tercero-MH/Generador-Facturas/pkg/amountwords"
)

// Common service errors
var (
	ErrNotFound           = errors.New("registro no encontrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInactiveAccount    = errors.New("cuenta inactiva o suspendida")
	ErrInvalidToken       = errors.New("token inválido o expirado")
	ErrInvalidState       = errors.New("transición de estado inválida")
	ErrDuplicate          = errors.New("ya existe un recibo con este número")
	ErrValidation         = errors.New("datos inválidos")
	ErrEmailDisabled      = errors.New("el envío de correos no está habilitado")
)

// Amount errors come from the converter package so errors.Is works across layers
var (
	ErrInvalidAmount = amountwords.ErrInvalidAmount
	ErrOutOfRange    = amountwords.ErrOutOfRange
)

// ValidationError lists the fields that failed validation
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error()
}

// Unwrap lets errors.Is match ErrValidation
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
