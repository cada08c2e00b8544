package domain

// Principal es el usuario autenticado asociado a una petición. Se construye
// en el middleware de autenticación y viaja por el contexto de la petición;
// nunca vive en estado global.
type Principal struct {
	ID   int64
	Tipo string
}
