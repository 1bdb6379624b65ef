package auth

import (
	"context"
	"errors"
	"testing"

	autherrors "go-checador/internal/auth/errors"
	companyerrors "go-checador/internal/company/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn     func(ctx context.Context, user *User) error
	getByEmailFn func(ctx context.Context, email string) (*User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*User, error)
}

func (f *fakeRepo) Create(ctx context.Context, user *User) error {
	return f.createFn(ctx, user)
}
func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return f.getByEmailFn(ctx, email)
}
func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return f.getByIDFn(ctx, id)
}

type fakeCompanies struct {
	exists bool
	err    error
}

func (f *fakeCompanies) Exists(ctx context.Context, id string) (bool, error) {
	return f.exists, f.err
}

func hashedPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestRegister_Success(t *testing.T) {
	companyID := uuid.New()
	var created *User
	repo := &fakeRepo{
		createFn: func(ctx context.Context, user *User) error {
			created = user
			return nil
		},
	}

	svc := NewService(repo, &fakeCompanies{exists: true})
	res, err := svc.Register(context.Background(), RegisterRequest{
		CompanyID: companyID.String(),
		Email:     "Admin@Empresa.MX",
		Name:      "Admin",
		Password:  "supersecret",
	})

	require.NoError(t, err)
	assert.Equal(t, "admin@empresa.mx", res.Email)
	assert.Equal(t, "ADMIN", res.Role)
	assert.Equal(t, companyID.String(), res.CompanyID)

	require.NotNil(t, created)
	assert.NotEqual(t, "supersecret", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("supersecret")))
}

func TestRegister_UnknownCompany(t *testing.T) {
	repo := &fakeRepo{
		createFn: func(ctx context.Context, user *User) error {
			t.Fatal("create must not be called")
			return nil
		},
	}

	svc := NewService(repo, &fakeCompanies{exists: false})
	_, err := svc.Register(context.Background(), RegisterRequest{
		CompanyID: uuid.NewString(),
		Email:     "admin@empresa.mx",
		Name:      "Admin",
		Password:  "supersecret",
	})

	assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
}

func TestLogin_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &User{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Email:     "admin@empresa.mx",
		Name:      "Admin",
		Password:  hashedPassword(t, "supersecret"),
		Role:      "ADMIN",
		IsActive:  true,
	}
	repo := &fakeRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			assert.Equal(t, "admin@empresa.mx", email)
			return user, nil
		},
	}

	svc := NewService(repo, nil)
	pair, res, err := svc.Login(context.Background(), " Admin@Empresa.MX ", "supersecret")

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, user.ID.String(), res.ID)
	assert.Equal(t, "ADMIN", res.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := &User{
		ID:       uuid.New(),
		Email:    "admin@empresa.mx",
		Password: hashedPassword(t, "supersecret"),
	}
	repo := &fakeRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return user, nil
		},
	}

	svc := NewService(repo, nil)
	_, _, err := svc.Login(context.Background(), "admin@empresa.mx", "wrong")

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := &fakeRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(repo, nil)
	_, _, err := svc.Login(context.Background(), "nobody@empresa.mx", "whatever")

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestRefreshToken_Roundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &User{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Email:     "admin@empresa.mx",
		Name:      "Admin",
		Password:  hashedPassword(t, "supersecret"),
		Role:      "ADMIN",
	}
	repo := &fakeRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return user, nil
		},
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*User, error) {
			assert.Equal(t, user.ID, id)
			return user, nil
		},
	}

	svc := NewService(repo, nil)
	pair, _, err := svc.Login(context.Background(), "admin@empresa.mx", "supersecret")
	require.NoError(t, err)

	newPair, res, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newPair.AccessToken)
	assert.Equal(t, user.ID.String(), res.ID)
}

func TestRefreshToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(&fakeRepo{}, nil)
	_, _, err := svc.RefreshToken(context.Background(), "not-a-jwt")

	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestGetMe(t *testing.T) {
	user := &User{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Email:     "admin@empresa.mx",
		Name:      "Admin",
		Role:      "ADMIN",
	}
	repo := &fakeRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*User, error) {
			if id == user.ID {
				return user, nil
			}
			return nil, errors.New("unexpected id")
		},
	}

	svc := NewService(repo, nil)

	res, err := svc.GetMe(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "admin@empresa.mx", res.Email)

	_, err = svc.GetMe(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
}
