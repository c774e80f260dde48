package domain

// TenantContext identifica al tenant (empresa) y al actor de cada operación.
// Siempre se pasa explícito a los casos de uso; nunca vive en estado global.
type TenantContext struct {
	CompanyID string
	ActorID   string // UserID que ejecuta la operación (created_by / acknowledged_by)
}

// Valid indica si el contexto trae empresa y actor.
func (t TenantContext) Valid() bool {
	return t.CompanyID != "" && t.ActorID != ""
}
