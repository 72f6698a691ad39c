package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"leavedesk/internal/auth"
	autherrors "leavedesk/internal/auth/errors"
	"leavedesk/internal/authz"
	"leavedesk/internal/employee"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepository struct {
	createFn     func(ctx context.Context, user *auth.User) error
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (f *fakeAuthRepository) Create(ctx context.Context, user *auth.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeEmployeeRepository struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func newFakeEmployeeRepo(findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)) *fakeEmployeeRepository {
	return &fakeEmployeeRepository{findByIDFn: findByIDFn}
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindDirectReports(ctx context.Context, managerID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	employeeID := uuid.New()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	user := &auth.User{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Email:      "ana@leavedesk.test",
		Password:   string(hashed),
		IsActive:   true,
	}
	emp := &employee.Employee{ID: employeeID, FullName: "Ana Wijaya", Role: string(authz.RoleManager)}

	t.Run("success carries role from employee row", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				assert.Equal(t, user.Email, email)
				return user, nil
			},
		}
		employeeRepo := newFakeEmployeeRepo(func(ctx context.Context, id string) (*employee.Employee, error) {
			return emp, nil
		})
		svc := auth.NewService(repo, employeeRepo)

		accessToken, refreshToken, resp, err := svc.Login(ctx, user.Email, "correct horse")

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, string(authz.RoleManager), resp.Role)
		assert.Equal(t, employeeID.String(), resp.EmployeeID)
		assert.Equal(t, "Ana Wijaya", resp.FullName)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
		}
		svc := auth.NewService(repo, newFakeEmployeeRepo(nil))

		_, _, _, err := svc.Login(ctx, user.Email, "wrong password")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{}, newFakeEmployeeRepo(nil))

		_, _, _, err := svc.Login(ctx, "nobody@leavedesk.test", "correct horse")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative deactivated user", func(t *testing.T) {
		inactive := *user
		inactive.IsActive = false
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return &inactive, nil
			},
		}
		svc := auth.NewService(repo, newFakeEmployeeRepo(nil))

		_, _, _, err := svc.Login(ctx, user.Email, "correct horse")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	emp := &employee.Employee{ID: employeeID, FullName: "Budi Santoso", Role: string(authz.RoleEmployee)}

	t.Run("success", func(t *testing.T) {
		var created *auth.User
		repo := &fakeAuthRepository{
			createFn: func(ctx context.Context, user *auth.User) error {
				created = user
				return nil
			},
		}
		employeeRepo := newFakeEmployeeRepo(func(ctx context.Context, id string) (*employee.Employee, error) {
			assert.Equal(t, employeeID.String(), id)
			return emp, nil
		})
		svc := auth.NewService(repo, employeeRepo)

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			EmployeeID: employeeID.String(),
			Email:      "budi@leavedesk.test",
			Password:   "long enough password",
		})

		assert.NoError(t, err)
		assert.Equal(t, string(authz.RoleEmployee), resp.Role)
		assert.NotNil(t, created)
		assert.NotEqual(t, "long enough password", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("long enough password")))
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{}, newFakeEmployeeRepo(nil))

		_, err := svc.Register(ctx, auth.RegisterRequest{
			EmployeeID: uuid.New().String(),
			Email:      "ghost@leavedesk.test",
			Password:   "long enough password",
		})

		assert.Error(t, err)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	employeeID := uuid.New()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	user := &auth.User{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Email:      "ana@leavedesk.test",
		Password:   string(hashed),
		IsActive:   true,
	}

	t.Run("refresh picks up role change", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
				return user, nil
			},
		}

		role := string(authz.RoleEmployee)
		employeeRepo := newFakeEmployeeRepo(func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: employeeID, FullName: "Ana Wijaya", Role: role}, nil
		})
		svc := auth.NewService(repo, employeeRepo)

		_, refreshToken, _, err := svc.Login(ctx, user.Email, "correct horse")
		assert.NoError(t, err)

		role = string(authz.RoleHR)
		_, _, resp, err := svc.RefreshToken(ctx, refreshToken)

		assert.NoError(t, err)
		assert.Equal(t, string(authz.RoleHR), resp.Role)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{}, newFakeEmployeeRepo(nil))

		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}
