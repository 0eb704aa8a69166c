package entity

import "time"

// Estados válidos para Shift.
const (
	ShiftStatusScheduled = "scheduled"
	ShiftStatusOpen      = "open"
	ShiftStatusClosed    = "closed"
)

// Shift representa un turno de caja en una sucursal. AssignedUserIDs acota la
// visibilidad para cajeros y farmacéuticos: solo ven turnos donde aparecen.
// Las referencias a usuarios eliminados quedan colgantes sin efecto (el turno
// simplemente deja de ser visible para ese id).
type Shift struct {
	ID              string
	BranchID        string
	AssignedUserIDs []string
	StartsAt        time.Time
	EndsAt          time.Time
	Status          string // scheduled, open, closed
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
