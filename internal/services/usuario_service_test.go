package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"pgat/internal/domain"
	"pgat/internal/repositories"
)

func usuarioMockRows(id int64, correo, password, tipo, estado string) *sqlmock.Rows {
	creado := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "nombre", "correo", "password", "tipo", "estado", "ultimo_acceso", "fecha_creacion", "fecha_actualizacion",
	}).AddRow(id, "Ana Rojas", correo, password, tipo, estado, nil, creado, nil)
}

func TestCrearUsuarioValidaciones(t *testing.T) {
	svc := UsuarioService{}
	cases := []struct {
		name string
		in   CrearUsuarioInput
	}{
		{"sin nombre", CrearUsuarioInput{Correo: "a@itcr.ac.cr", Password: "secreta", Tipo: "profesor"}},
		{"tipo desconocido", CrearUsuarioInput{Nombre: "Ana", Correo: "a@itcr.ac.cr", Password: "secreta", Tipo: "visitante"}},
		{"correo externo", CrearUsuarioInput{Nombre: "Ana", Correo: "ana@gmail.com", Password: "secreta", Tipo: "estudiante"}},
		{"password corta", CrearUsuarioInput{Nombre: "Ana", Correo: "ana@estudiante.tec.ac.cr", Password: "12345", Tipo: "estudiante"}},
	}
	for _, c := range cases {
		if _, err := svc.Crear(context.Background(), c.in); !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", c.name, err)
		}
	}
}

func TestCrearUsuarioCorreoDuplicado(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM usuarios WHERE correo = \$1`).
		WithArgs("ana@itcr.ac.cr").
		WillReturnRows(usuarioMockRows(3, "ana@itcr.ac.cr", "x", "profesor", "activo"))

	svc := UsuarioService{UsuarioRepo: repositories.UsuarioRepository{DB: db}}
	_, err = svc.Crear(context.Background(), CrearUsuarioInput{
		Nombre: "Ana", Correo: "Ana@itcr.ac.cr", Password: "secreta", Tipo: "profesor",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for duplicate email, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEliminarProfesorConOfertasVigentes(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM usuarios WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(usuarioMockRows(3, "ana@itcr.ac.cr", "x", "profesor", "activo"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ofertas o`).
		WithArgs(int64(3), "cancelada").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	svc := UsuarioService{UsuarioRepo: repositories.UsuarioRepository{DB: db}}
	if err := svc.Eliminar(context.Background(), 3); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for professor with live offers, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCambiarPasswordVerificaActual(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("laBuena"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	mock.ExpectQuery(`SELECT .+ FROM usuarios WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(usuarioMockRows(3, "ana@itcr.ac.cr", string(hash), "profesor", "activo"))

	svc := UsuarioService{UsuarioRepo: repositories.UsuarioRepository{DB: db}}
	err = svc.CambiarPassword(context.Background(), 3, "laMala", "nuevaClave")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for wrong current password, got %v", err)
	}
}
