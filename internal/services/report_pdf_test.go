package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	intdb "pgat/internal/db"
)

func TestBuildReportPDF(t *testing.T) {
	monto := 1200.50
	rep := Report{
		Metadata: ReportMetadata{
			GeneratedAt:  time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
			Filters:      map[string]string{"period": "month", "tipo": "Todos"},
			TotalRecords: 4,
		},
		Statistics: map[string][]intdb.GroupStat{
			"byType": {
				{Key: "beca", Count: 3, Sum: &monto},
				{Key: "pago", Count: 1},
			},
		},
	}

	data, filename, err := BuildReportPDF("Reporte de Beneficios", rep)
	if err != nil {
		t.Fatalf("BuildReportPDF error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF: %q", data[:8])
	}
	if !strings.HasPrefix(filename, "reporte_de_beneficios_") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("filename = %q", filename)
	}
}

func TestNombreArchivo(t *testing.T) {
	if got := nombreArchivo(""); got != "reporte" {
		t.Fatalf("empty title = %q", got)
	}
	if got := nombreArchivo("Usuarios / Activos: Hoy"); got != "usuarios___activos__hoy" {
		t.Fatalf("sanitized = %q", got)
	}
	largo := strings.Repeat("a", 60)
	if got := nombreArchivo(largo); len(got) != 40 {
		t.Fatalf("long title should be truncated, len = %d", len(got))
	}
}
