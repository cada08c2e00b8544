package models

import "time"

type Evaluacion struct {
	ID            int64     `json:"id"`
	PostulacionID int64     `json:"postulacion_id"`
	Fecha         time.Time `json:"fecha"`
	Comentario    string    `json:"comentario"`
	Calificacion  float64   `json:"calificacion"`
}

// Estados de un registro de horas.
const (
	HorasPendiente = "pendiente"
	HorasAprobado  = "aprobado"
	HorasRechazado = "rechazado"
)

type RegistroHoras struct {
	ID            int64     `json:"id"`
	PostulacionID int64     `json:"postulacion_id"`
	Fecha         string    `json:"fecha"`
	Horas         float64   `json:"horas"`
	Descripcion   string    `json:"descripcion"`
	Estado        string    `json:"estado"`
	FechaRegistro time.Time `json:"fecha_registro"`
}

type ProyectoInvestigacion struct {
	ID                  int64  `json:"id"`
	OfertaID            int64  `json:"oferta_id"`
	AreaInvestigacion   string `json:"area_investigacion"`
	Objetivos           string `json:"objetivos"`
	ResultadosEsperados string `json:"resultados_esperados"`
}
