package services

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
)

// BuildReportPDF renderiza la versión descargable de un reporte tabular:
// encabezado con filtros, bloque de estadísticas y el total de registros.
func BuildReportPDF(titulo string, rep Report) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(titulo, false)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(strings.ToUpper(titulo)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Generado: "+rep.Metadata.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.Ln(6)

	keys := make([]string, 0, len(rep.Metadata.Filters))
	for k := range rep.Metadata.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pdf.Cell(0, 6, tr(fmt.Sprintf("%s: %s", k, rep.Metadata.Filters[k])))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Registros: %d", rep.Metadata.TotalRecords))
	pdf.Ln(10)

	grupos := make([]string, 0, len(rep.Statistics))
	for g := range rep.Statistics {
		grupos = append(grupos, g)
	}
	sort.Strings(grupos)
	for _, g := range grupos {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, tr(g))
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 11)
		for _, s := range rep.Statistics[g] {
			line := fmt.Sprintf("%s: %d", s.Key, s.Count)
			if s.Sum != nil {
				line += fmt.Sprintf(" (monto %.2f)", *s.Sum)
			}
			pdf.Cell(0, 6, tr(line))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, tr("Reporte generado por PGAT-TEC. Los datos detallados están disponibles en la versión JSON del mismo endpoint."), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s.pdf", nombreArchivo(titulo), time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

func nombreArchivo(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "reporte"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_")
	s = replacer.Replace(strings.ToLower(s))
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
