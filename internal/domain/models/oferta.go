package models

import "time"

// Tipos de oferta.
const (
	OfertaAsistencia = "Asistencia"
	OfertaTutoria    = "Tutoría"
	OfertaProyecto   = "Proyecto"
)

// Estados del ciclo de vida de una oferta.
const (
	OfertaPendiente  = "pendiente"
	OfertaActiva     = "activa"
	OfertaFinalizada = "finalizada"
	OfertaCancelada  = "cancelada"
)

type Oferta struct {
	ID                 int64      `json:"id"`
	Nombre             string     `json:"nombre"`
	Tipo               string     `json:"tipo"`
	Descripcion        string     `json:"descripcion"`
	Vacantes           int        `json:"vacantes"`
	HorasSemana        int        `json:"horas_semana"`
	FechaInicio        string     `json:"fecha_inicio"`
	FechaFin           string     `json:"fecha_fin"`
	Estado             string     `json:"estado"`
	EscuelaID          *int64     `json:"escuela_id,omitempty"`
	ProfesorID         *int64     `json:"profesor_id,omitempty"`
	PromedioMinimo     float64    `json:"promedio_minimo"`
	CursosRequeridos   *string    `json:"cursos_requeridos,omitempty"`
	Beneficio          string     `json:"beneficio"`
	MotivoRechazo      *string    `json:"motivo_rechazo,omitempty"`
	FechaCreacion      time.Time  `json:"fecha_creacion"`
	FechaActualizacion *time.Time `json:"fecha_actualizacion,omitempty"`
}

// OfertaDetalle agrega los nombres resueltos de escuela y profesor para los
// listados de supervisión.
type OfertaDetalle struct {
	Oferta
	EscuelaNombre  string `json:"escuela_nombre"`
	ProfesorNombre string `json:"profesor_nombre"`
}
