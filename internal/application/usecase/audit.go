package usecase

import (
	"github.com/jhoicas/FarmaPOS-api/internal/domain/authz"
	"github.com/jhoicas/FarmaPOS-api/pkg/logger"
)

// auditDecision emite hacia el log estructurado el evento de auditoría de una
// decisión denegada. El motor nunca registra por sí mismo: las capas de
// aplicación son las responsables de emitir cada denegación.
func auditDecision(log *logger.Logger, ev authz.Event) {
	if ev.Decision.Allowed {
		return
	}
	log.Warn().
		Str("user_id", ev.Identity.UserID).
		Str("role", string(ev.Identity.Role)).
		Bool("override", ev.Identity.HasOverride()).
		Str("action", string(ev.Action)).
		Str("kind", string(ev.Kind)).
		Str("target_id", ev.TargetID).
		Str("reason", string(ev.Decision.Reason)).
		Msg("autorización denegada")
}

// auditPlan registra el plan de borrado en cascada que se va a ejecutar:
// un paso por tipo de recurso, en orden hojas-primero.
func auditPlan(log *logger.Logger, id authz.Identity, rootKind authz.ResourceKind, rootID string, steps []authz.DeletionStep) {
	ev := log.Info().
		Str("user_id", id.UserID).
		Str("role", string(id.Role)).
		Str("root_kind", string(rootKind)).
		Str("root_id", rootID).
		Int("steps", len(steps))
	for _, s := range steps {
		ev = ev.Int("count_"+string(s.Kind), len(s.IDs))
	}
	ev.Msg("plan de borrado en cascada")
}
