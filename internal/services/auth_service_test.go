package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"pgat/internal/domain"
	"pgat/internal/domain/models"
	"pgat/internal/repositories"
)

func usuarioDePrueba() models.Usuario {
	return models.Usuario{ID: 3, Nombre: "Ana Rojas", Correo: "ana@itcr.ac.cr", Tipo: "profesor", Estado: "activo"}
}

func TestLoginEmiteTokenVerificable(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("secreta1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	mock.ExpectQuery(`SELECT .+ FROM usuarios WHERE correo = \$1`).
		WithArgs("ana@itcr.ac.cr").
		WillReturnRows(usuarioMockRows(3, "ana@itcr.ac.cr", string(hash), "profesor", "activo"))
	mock.ExpectExec(`UPDATE usuarios SET ultimo_acceso = CURRENT_TIMESTAMP WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := AuthService{
		UsuarioRepo: repositories.UsuarioRepository{DB: db},
		JWTSecret:   "clave-de-prueba",
	}
	res, err := svc.Login(context.Background(), LoginInput{
		Username: "Ana@itcr.ac.cr",
		Password: "secreta1",
		UserType: "Profesor",
	})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected a signed token")
	}
	if res.Usuario.Password != "" {
		t.Fatalf("password hash must not leave the service")
	}

	p, err := svc.ParseToken(res.Token)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if p.ID != 3 || p.Tipo != "profesor" {
		t.Fatalf("principal = %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginRechazaPasswordIncorrecta(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("laBuena"), bcrypt.MinCost)
	mock.ExpectQuery(`SELECT .+ FROM usuarios WHERE correo = \$1`).
		WithArgs("ana@itcr.ac.cr").
		WillReturnRows(usuarioMockRows(3, "ana@itcr.ac.cr", string(hash), "profesor", "activo"))

	svc := AuthService{UsuarioRepo: repositories.UsuarioRepository{DB: db}, JWTSecret: "clave"}
	_, err = svc.Login(context.Background(), LoginInput{
		Username: "ana@itcr.ac.cr", Password: "laMala", UserType: "profesor",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginRechazaTipoDistinto(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secreta1"), bcrypt.MinCost)
	mock.ExpectQuery(`SELECT .+ FROM usuarios WHERE correo = \$1`).
		WithArgs("ana@itcr.ac.cr").
		WillReturnRows(usuarioMockRows(3, "ana@itcr.ac.cr", string(hash), "profesor", "activo"))

	svc := AuthService{UsuarioRepo: repositories.UsuarioRepository{DB: db}, JWTSecret: "clave"}
	_, err = svc.Login(context.Background(), LoginInput{
		Username: "ana@itcr.ac.cr", Password: "secreta1", UserType: "admin",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginRechazaUsuarioInactivo(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secreta1"), bcrypt.MinCost)
	mock.ExpectQuery(`SELECT .+ FROM usuarios WHERE correo = \$1`).
		WithArgs("ana@itcr.ac.cr").
		WillReturnRows(usuarioMockRows(3, "ana@itcr.ac.cr", string(hash), "profesor", "inactivo"))

	svc := AuthService{UsuarioRepo: repositories.UsuarioRepository{DB: db}, JWTSecret: "clave"}
	_, err = svc.Login(context.Background(), LoginInput{
		Username: "ana@itcr.ac.cr", Password: "secreta1", UserType: "profesor",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseTokenRechazaOtraClave(t *testing.T) {
	emisor := AuthService{JWTSecret: "clave-a"}
	token, err := emisor.signToken(usuarioDePrueba())
	if err != nil {
		t.Fatalf("signToken error: %v", err)
	}

	receptor := AuthService{JWTSecret: "clave-b"}
	if _, err := receptor.ParseToken(token); err == nil {
		t.Fatalf("a token signed with another key must not verify")
	}
}
