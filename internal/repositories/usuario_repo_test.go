package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	intdb "pgat/internal/db"
)

func TestUsuarioListPageAndTotal(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	creado := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, nombre, correo, tipo, estado, ultimo_acceso, fecha_creacion FROM usuarios WHERE 1=1 AND tipo = \$1 AND \(nombre ILIKE \$2 OR correo ILIKE \$2\) ORDER BY fecha_creacion DESC, id DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("estudiante", "%ana%", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "correo", "tipo", "estado", "ultimo_acceso", "fecha_creacion"}).
			AddRow(7, "Ana Rojas", "ana@estudiante.tec.ac.cr", "estudiante", "activo", nil, creado))
	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total FROM usuarios WHERE 1=1 AND tipo = \$1 AND \(nombre ILIKE \$2 OR correo ILIKE \$2\)`).
		WithArgs("estudiante", "%ana%").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(11))

	repo := UsuarioRepository{DB: db}
	items, total, err := repo.List(context.Background(),
		UsuarioFiltro{Tipo: "estudiante", Search: "ana"},
		intdb.PageRequest{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 11 {
		t.Fatalf("total = %d", total)
	}
	if len(items) != 1 || items[0].Nombre != "Ana Rojas" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUsuarioDeleteReportsMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM usuarios WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := UsuarioRepository{DB: db}
	ok, err := repo.Delete(context.Background(), 99)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if ok {
		t.Fatalf("delete of missing row should report false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
