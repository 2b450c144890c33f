package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ecoreserva/internal/auth"
	"ecoreserva/internal/db"
	"ecoreserva/internal/entities"
	httperrors "ecoreserva/internal/errors"
	"ecoreserva/internal/repository"
)

type fakeUserRepo struct {
	nextID  int
	byEmail map[string]*db.Usuario
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, byEmail: map[string]*db.Usuario{}}
}

func (f *fakeUserRepo) GetByEmail(correo string) (*db.Usuario, error) {
	u, ok := f.byEmail[correo]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByID(id int) (*db.Usuario, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) Create(u *db.Usuario) error {
	if _, exists := f.byEmail[u.Correo]; exists {
		return errors.New("duplicate email")
	}
	u.ID = f.nextID
	f.nextID++
	copied := *u
	f.byEmail[u.Correo] = &copied
	return nil
}

func newAuthService(repo repository.UserRepository) *AuthService {
	return NewAuthService(repo, "test-secret", time.Hour)
}

func TestRegisterStoresHashedPasswordAndRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	err := svc.Register(entities.RegisterRequest{
		Nombre:   "Ana",
		Apellido: "Mora",
		Correo:   "Ana@Test.com",
		Password: "secreta1",
		Role:     "owner",
	})
	require.NoError(t, err)

	stored, ok := repo.byEmail["ana@test.com"]
	require.True(t, ok, "email should be stored lowercased")
	assert.Equal(t, RolAnfitrion, stored.NombreRol)
	assert.NotEqual(t, "secreta1", stored.Contrasena)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Contrasena), []byte("secreta1")))
}

func TestRegisterAdminRoleDowngradedToClient(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	err := svc.Register(entities.RegisterRequest{
		Nombre:   "Eve",
		Correo:   "eve@test.com",
		Password: "secreta1",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, RolTurista, repo.byEmail["eve@test.com"].NombreRol)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	err := svc.Register(entities.RegisterRequest{
		Nombre:   "Ana",
		Correo:   "ana@test.com",
		Password: "corta",
	})
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "auth/weak-password", httpErr.Code)
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	require.NoError(t, svc.Register(entities.RegisterRequest{
		Nombre: "Ana", Correo: "ana@test.com", Password: "secreta1",
	}))

	err := svc.Register(entities.RegisterRequest{
		Nombre: "Ana", Correo: "ANA@test.com", Password: "secreta1",
	})
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Status)
	assert.Equal(t, "auth/email-already-in-use", httpErr.Code)
}

func TestLoginReturnsTokenWithRoleClaim(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	require.NoError(t, svc.Register(entities.RegisterRequest{
		Nombre: "Ana", Correo: "ana@test.com", Password: "secreta1", Role: "owner",
	}))

	resp, err := svc.Login(entities.LoginRequest{Correo: "Ana@Test.com", Password: "secreta1"})
	require.NoError(t, err)
	assert.Equal(t, "owner", resp.User.Role)
	assert.Equal(t, "ana@test.com", resp.User.Email)

	claims, err := auth.ParseToken(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "owner", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	require.NoError(t, svc.Register(entities.RegisterRequest{
		Nombre: "Ana", Correo: "ana@test.com", Password: "secreta1",
	}))

	_, err := svc.Login(entities.LoginRequest{Correo: "ana@test.com", Password: "equivocada"})
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 401, httpErr.Status)
	assert.Equal(t, "auth/wrong-password", httpErr.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, err := svc.Login(entities.LoginRequest{Correo: "nadie@test.com", Password: "secreta1"})
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
	assert.Equal(t, "auth/user-not-found", httpErr.Code)
}

func TestMeReadsStore(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	require.NoError(t, svc.Register(entities.RegisterRequest{
		Nombre: "Ana", Correo: "ana@test.com", Password: "secreta1",
	}))
	id := repo.byEmail["ana@test.com"].ID

	user, err := svc.Me(id)
	require.NoError(t, err)
	assert.Equal(t, "ana@test.com", user.Email)
	assert.Equal(t, RoleClient, user.Role)

	_, err = svc.Me(9999)
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
}

func TestRegisterTrimsNothingButLowercasesEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	require.NoError(t, svc.Register(entities.RegisterRequest{
		Nombre: "Ana", Correo: "MiXeD@Test.COM", Password: "secreta1",
	}))
	_, ok := repo.byEmail[strings.ToLower("MiXeD@Test.COM")]
	assert.True(t, ok)
}
