// Package auth registro y login multi-tenant: el registro crea la empresa
// (trial de 14 días) junto con su usuario administrador.
package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
	"github.com/jobberpro/fieldservice-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const trialDays = 14

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// Register crea la empresa en estado trial (14 días) y su usuario admin, hashea
// el password con bcrypt y devuelve token + usuario. El email es único global:
// ErrEmailAlreadyExists si ya está registrado.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || in.CompanyName == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	company := &entity.Company{
		ID:                 uuid.New().String(),
		Name:               in.CompanyName,
		Email:              email,
		Phone:              in.Phone,
		SubscriptionStatus: entity.SubscriptionTrial,
		SubscriptionPlan:   entity.PlanBasic,
		TrialEndsAt:        now.AddDate(0, 0, trialDays),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Phone:        in.Phone,
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	return uc.authResponse(user, company.Name)
}

// Login verifica email/password, rechaza cuentas inactivas y genera el JWT.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized // mismo error que password incorrecto
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	company, err := uc.companyRepo.GetByID(user.CompanyID)
	if err != nil {
		return nil, err
	}
	companyName := ""
	if company != nil {
		companyName = company.Name
	}
	return uc.authResponse(user, companyName)
}

func (uc *AuthUseCase) authResponse(user *entity.User, companyName string) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User: dto.UserResponse{
			ID:          user.ID,
			CompanyID:   user.CompanyID,
			Email:       user.Email,
			FullName:    user.FullName,
			Role:        user.Role,
			CompanyName: companyName,
			CreatedAt:   user.CreatedAt,
		},
	}, nil
}
