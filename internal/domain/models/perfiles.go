package models

// Estudiante es el perfil académico asociado a un usuario tipo estudiante.
type Estudiante struct {
	ID              int64    `json:"id"`
	UsuarioID       int64    `json:"usuario_id"`
	Carnet          string   `json:"carnet"`
	Carrera         string   `json:"carrera"`
	Nivel           string   `json:"nivel"`
	Promedio        float64  `json:"promedio"`
	CursosAprobados []string `json:"cursos_aprobados,omitempty"`
	Habilidades     []string `json:"habilidades,omitempty"`
}

type Profesor struct {
	ID           int64  `json:"id"`
	UsuarioID    int64  `json:"usuario_id"`
	Departamento string `json:"departamento"`
	Especialidad string `json:"especialidad,omitempty"`
	Telefono     string `json:"telefono,omitempty"`
}

type Escuela struct {
	ID          int64  `json:"id"`
	UsuarioID   int64  `json:"usuario_id"`
	Facultad    string `json:"facultad"`
	Responsable string `json:"responsable"`
	Telefono    string `json:"telefono,omitempty"`
	Descripcion string `json:"descripcion,omitempty"`
}
