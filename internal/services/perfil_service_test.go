package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"pgat/internal/domain"
	"pgat/internal/domain/models"
	"pgat/internal/repositories"
)

func TestCrearEstudianteValidaciones(t *testing.T) {
	svc := PerfilService{}

	casos := []struct {
		nombre string
		in     models.Estudiante
	}{
		{"sin usuario", models.Estudiante{Carnet: "2020123", Carrera: "Computación", Nivel: "3"}},
		{"sin carnet", models.Estudiante{UsuarioID: 4, Carrera: "Computación", Nivel: "3"}},
		{"promedio fuera de rango", models.Estudiante{UsuarioID: 4, Carnet: "2020123", Carrera: "Computación", Nivel: "3", Promedio: 120}},
	}
	for _, tc := range casos {
		if _, err := svc.CrearEstudiante(context.Background(), tc.in); !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", tc.nombre, err)
		}
	}
}

func TestCrearEstudianteRechazaPerfilDuplicado(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM usuarios WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(usuarioMockRows(4, "luis@itcr.ac.cr", "x", "estudiante", "activo"))
	mock.ExpectQuery(`SELECT .+ FROM estudiantes WHERE usuario_id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "usuario_id", "carnet", "carrera", "nivel", "promedio", "cursos_aprobados", "habilidades",
		}).AddRow(9, 4, "2020123", "Computación", "3", 82.5, "{}", "{}"))

	svc := PerfilService{
		PerfilRepo:  repositories.PerfilRepository{DB: db},
		UsuarioRepo: repositories.UsuarioRepository{DB: db},
	}
	_, err = svc.CrearEstudiante(context.Background(), models.Estudiante{
		UsuarioID: 4, Carnet: "2020123", Carrera: "Computación", Nivel: "3", Promedio: 82.5,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for duplicated profile, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCrearProfesorUsuarioInexistente(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM usuarios WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := PerfilService{
		PerfilRepo:  repositories.PerfilRepository{DB: db},
		UsuarioRepo: repositories.UsuarioRepository{DB: db},
	}
	_, err = svc.CrearProfesor(context.Background(), models.Profesor{UsuarioID: 99, Departamento: "Matemática"})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestEliminarProfesorInexistente(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM profesores WHERE usuario_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	svc := PerfilService{PerfilRepo: repositories.PerfilRepository{DB: db}}
	if err := svc.EliminarProfesor(context.Background(), 7); !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
