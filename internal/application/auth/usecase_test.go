package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobberpro/fieldservice-api/internal/application/auth"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	pkgjwt "github.com/jobberpro/fieldservice-api/pkg/jwt"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	byEmail map[string]*entity.User
}

func (r *memUserRepo) Create(u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	c := *u
	r.byEmail[u.Email] = &c
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

type memCompanyRepo struct {
	byID map[string]*entity.Company
}

func (r *memCompanyRepo) Create(c *entity.Company) error {
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *memCompanyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func newAuthUC() (*auth.AuthUseCase, *memUserRepo, *memCompanyRepo) {
	users := &memUserRepo{byEmail: map[string]*entity.User{}}
	companies := &memCompanyRepo{byID: map[string]*entity.Company{}}
	uc := auth.NewAuthUseCase(users, companies, auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "jobber-pro-test",
	})
	return uc, users, companies
}

// ── Register ──────────────────────────────────────────────────────────────────

func TestRegister_CreaEmpresaTrialYUsuarioAdmin(t *testing.T) {
	uc, users, companies := newAuthUC()

	out, err := uc.Register(dto.RegisterRequest{
		Email:       "  Owner@Acme.COM ",
		Password:    "super-secreta",
		FullName:    "Ana Gómez",
		CompanyName: "Acme Field Services",
	})
	require.NoError(t, err)

	assert.Equal(t, "bearer", out.TokenType)
	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, "owner@acme.com", out.User.Email, "el email se normaliza a minúsculas")
	assert.Equal(t, entity.RoleAdmin, out.User.Role, "el primer usuario de la empresa es admin")
	assert.Equal(t, "Acme Field Services", out.User.CompanyName)

	// La empresa nace en trial de 14 días.
	company := companies.byID[out.User.CompanyID]
	require.NotNil(t, company)
	assert.Equal(t, entity.SubscriptionTrial, company.SubscriptionStatus)
	assert.Equal(t, entity.PlanBasic, company.SubscriptionPlan)
	expected := time.Now().AddDate(0, 0, 14)
	assert.WithinDuration(t, expected, company.TrialEndsAt, time.Minute)

	// El password nunca se guarda en claro.
	user := users.byEmail["owner@acme.com"]
	require.NotNil(t, user)
	assert.NotEqual(t, "super-secreta", user.PasswordHash)
	assert.True(t, user.IsActive)

	// El token lleva userID, companyID y role.
	userID, companyID, role, err := pkgjwt.Parse("test-secret-key-for-unit-tests", out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, company.ID, companyID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, _ := newAuthUC()

	in := dto.RegisterRequest{
		Email:       "owner@acme.com",
		Password:    "super-secreta",
		CompanyName: "Acme",
	}
	_, err := uc.Register(in)
	require.NoError(t, err)

	in.CompanyName = "Otra Empresa"
	_, err = uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_CamposRequeridos(t *testing.T) {
	uc, _, _ := newAuthUC()

	_, err := uc.Register(dto.RegisterRequest{Email: "a@b.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "company_name es requerido")

	_, err = uc.Register(dto.RegisterRequest{Email: "", Password: "x", CompanyName: "Acme"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Login ─────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas(t *testing.T) {
	uc, _, _ := newAuthUC()
	_, err := uc.Register(dto.RegisterRequest{
		Email: "owner@acme.com", Password: "super-secreta", CompanyName: "Acme",
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "OWNER@acme.com", Password: "super-secreta"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, "Acme", out.User.CompanyName)
}

func TestLogin_PasswordIncorrectoYEmailInexistenteSonElMismoError(t *testing.T) {
	uc, _, _ := newAuthUC()
	_, err := uc.Register(dto.RegisterRequest{
		Email: "owner@acme.com", Password: "super-secreta", CompanyName: "Acme",
	})
	require.NoError(t, err)

	_, errPass := uc.Login(dto.LoginRequest{Email: "owner@acme.com", Password: "incorrecta"})
	_, errMail := uc.Login(dto.LoginRequest{Email: "nadie@acme.com", Password: "super-secreta"})

	assert.ErrorIs(t, errPass, domain.ErrUnauthorized)
	assert.ErrorIs(t, errMail, domain.ErrUnauthorized,
		"no se debe poder distinguir un email registrado de uno que no lo está")
}

func TestLogin_CuentaInactiva(t *testing.T) {
	uc, users, _ := newAuthUC()
	_, err := uc.Register(dto.RegisterRequest{
		Email: "owner@acme.com", Password: "super-secreta", CompanyName: "Acme",
	})
	require.NoError(t, err)

	users.byEmail["owner@acme.com"].IsActive = false

	_, err = uc.Login(dto.LoginRequest{Email: "owner@acme.com", Password: "super-secreta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
