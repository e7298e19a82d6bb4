package blocks

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"clinicblocks/models"
	"clinicblocks/utils"

	"golang.org/x/text/unicode/norm"
)

const maxReasonLength = 500

// reasonPattern allows letters (Spanish diacritics included), digits, whitespace and common punctuation.
var reasonPattern = regexp.MustCompile(`^[\p{L}\p{N}\s.,;:¡!¿?()\-_/"'#%&+]+$`)

// ValidationError reports the first invalid field of a block.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NormalizeReason applies NFC normalisation and trims surrounding whitespace.
func NormalizeReason(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// validateBlock checks a complete block. The reason must already be normalised.
func validateBlock(b models.ResourceBlock) error {
	if len(b.Resources) == 0 {
		return invalid("resources", "Debe seleccionar al menos un recurso para bloquear.")
	}
	seen := make(map[models.ResourceID]struct{}, len(b.Resources))
	for _, r := range b.Resources {
		if !models.IsKnownResource(r) {
			return invalid("resources", fmt.Sprintf("Recurso desconocido: %s.", r))
		}
		if _, dup := seen[r]; dup {
			return invalid("resources", fmt.Sprintf("Recurso duplicado: %s.", r))
		}
		seen[r] = struct{}{}
	}

	if b.StartDate == "" || b.EndDate == "" {
		return invalid("startDate", "Debe seleccionar fechas de inicio y fin.")
	}
	start, err := utils.ParseLocalDate(b.StartDate)
	if err != nil {
		return invalid("startDate", "Fecha de inicio inválida.")
	}
	end, err := utils.ParseLocalDate(b.EndDate)
	if err != nil {
		return invalid("endDate", "Fecha de fin inválida.")
	}
	if end.Before(start) {
		return invalid("endDate", "La fecha de fin debe ser posterior a la fecha de inicio.")
	}

	startMin, err := utils.ParseClock(b.StartTime)
	if err != nil {
		return invalid("startTime", "Hora de inicio inválida.")
	}
	endMin, err := utils.ParseClock(b.EndTime)
	if err != nil {
		return invalid("endTime", "Hora de fin inválida.")
	}
	if endMin <= startMin {
		return invalid("endTime", "La hora de fin debe ser posterior a la hora de inicio.")
	}

	if b.Reason == "" {
		return invalid("reason", "Debe especificar un motivo para el bloqueo.")
	}
	if utf8.RuneCountInString(b.Reason) > maxReasonLength {
		return invalid("reason", "El motivo no puede exceder 500 caracteres.")
	}
	if !reasonPattern.MatchString(b.Reason) {
		return invalid("reason", "El motivo contiene caracteres no permitidos.")
	}

	if !b.Recurrence.Valid() {
		return invalid("recurrence", "Tipo de recurrencia inválido.")
	}
	if b.Recurrence.Recurs() {
		if b.RecurrenceEndDate == "" {
			return invalid("recurrenceEndDate", "Debe especificar fecha de fin para bloqueos recurrentes.")
		}
		recEnd, err := utils.ParseLocalDate(b.RecurrenceEndDate)
		if err != nil {
			return invalid("recurrenceEndDate", "Fecha de fin de recurrencia inválida.")
		}
		if recEnd.Before(start) {
			return invalid("recurrenceEndDate", "La fecha de fin de recurrencia debe ser posterior a la fecha de inicio.")
		}
	}
	return nil
}
