package models

import "time"

// Tipos de beneficio económico.
const (
	BeneficioExoneracion = "exoneracion"
	BeneficioPago        = "pago"
	BeneficioMixto       = "mixto"
)

// Estados de un beneficio económico.
const (
	BeneficioPendiente = "pendiente"
	BeneficioAprobado  = "aprobado"
	BeneficioRechazado = "rechazado"
	BeneficioProcesado = "procesado"
)

type BeneficioEconomico struct {
	ID                    int64      `json:"id"`
	PostulacionID         int64      `json:"postulacion_id"`
	Tipo                  string     `json:"tipo"`
	PorcentajeExoneracion *float64   `json:"porcentaje_exoneracion,omitempty"`
	MontoPorHora          *float64   `json:"monto_por_hora,omitempty"`
	TotalHoras            *float64   `json:"total_horas,omitempty"`
	MontoTotal            *float64   `json:"monto_total,omitempty"`
	Estado                string     `json:"estado"`
	FechaCreacion         time.Time  `json:"fecha_creacion"`
	FechaActualizacion    *time.Time `json:"fecha_actualizacion,omitempty"`
}

// BeneficioDetalle agrega contexto de oferta, postulación y estudiante para
// el reporte de beneficios.
type BeneficioDetalle struct {
	BeneficioEconomico
	OfertaNombre      string `json:"oferta_nombre"`
	OfertaTipo        string `json:"oferta_tipo"`
	PostulacionEstado string `json:"postulacion_estado"`
	EstudianteNombre  string `json:"estudiante_nombre"`
}
