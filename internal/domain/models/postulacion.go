package models

import "time"

// Estados de una postulación.
const (
	PostulacionPendiente = "pendiente"
	PostulacionAprobada  = "aprobada"
	PostulacionRechazada = "rechazada"
	PostulacionCancelada = "cancelada"
)

type Postulacion struct {
	ID                 int64      `json:"id"`
	EstudianteID       int64      `json:"estudiante_id"`
	OfertaID           int64      `json:"oferta_id"`
	FechaPostulacion   time.Time  `json:"fecha_postulacion"`
	Estado             string     `json:"estado"`
	Comentario         *string    `json:"comentario,omitempty"`
	Motivacion         *string    `json:"motivacion,omitempty"`
	FechaActualizacion *time.Time `json:"fecha_actualizacion,omitempty"`
}

// PostulacionDetalle agrega datos de la oferta y del estudiante para los
// reportes de postulaciones.
type PostulacionDetalle struct {
	Postulacion
	OfertaNombre     string `json:"oferta_nombre"`
	OfertaTipo       string `json:"oferta_tipo"`
	EscuelaID        *int64 `json:"escuela_id,omitempty"`
	EstudianteCarnet string `json:"estudiante_carnet"`
	EstudianteNombre string `json:"estudiante_nombre"`
}
