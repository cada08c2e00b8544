package models

import "time"

// Tipos de usuario.
const (
	TipoEstudiante = "estudiante"
	TipoProfesor   = "profesor"
	TipoEscuela    = "escuela"
	TipoAdmin      = "admin"
)

// Estados de usuario.
const (
	EstadoActivo   = "activo"
	EstadoInactivo = "inactivo"
)

type Usuario struct {
	ID                 int64      `json:"id"`
	Nombre             string     `json:"nombre"`
	Correo             string     `json:"correo"`
	Password           string     `json:"-"`
	Tipo               string     `json:"tipo"`
	Estado             string     `json:"estado"`
	UltimoAcceso       *time.Time `json:"ultimo_acceso,omitempty"`
	FechaCreacion      time.Time  `json:"fecha_creacion"`
	FechaActualizacion *time.Time `json:"fecha_actualizacion,omitempty"`
}

func TipoValido(tipo string) bool {
	switch tipo {
	case TipoEstudiante, TipoProfesor, TipoEscuela, TipoAdmin:
		return true
	}
	return false
}
