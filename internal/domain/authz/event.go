package authz

// Event es el evento estructurado que el llamador debe emitir hacia auditoría
// por cada denegación y por cada plan de cascada ejecutado. El motor lo expone
// como valor de retorno; nunca lo imprime ni lo registra por sí mismo.
type Event struct {
	Identity Identity
	Action   Action
	Kind     ResourceKind
	TargetID string
	Decision Decision
}

// NewEvent construye el evento de auditoría de una decisión.
func NewEvent(id Identity, action Action, kind ResourceKind, targetID string, decision Decision) Event {
	return Event{
		Identity: id,
		Action:   action,
		Kind:     kind,
		TargetID: targetID,
		Decision: decision,
	}
}
