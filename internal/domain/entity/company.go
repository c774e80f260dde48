package entity

import "time"

// Planes y estados de suscripción.
const (
	SubscriptionTrial     = "trial"
	SubscriptionActive    = "active"
	SubscriptionSuspended = "suspended"

	PlanBasic        = "basic"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

// Company representa una organización/tenant del sistema (multi-tenant).
type Company struct {
	ID                 string
	Name               string
	Email              string
	Phone              string
	Address            string
	SubscriptionStatus string // trial, active, suspended
	SubscriptionPlan   string // basic, professional, enterprise
	TrialEndsAt        time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
