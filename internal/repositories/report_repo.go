package repositories

import (
	"context"
	"database/sql"
	"time"

	"pgat/internal/config"
	intdb "pgat/internal/db"
	"pgat/internal/domain/models"
)

// ReportRepository concentra las consultas de reportes y del dashboard. Las
// filas de datos llevan joins propios de cada reporte; las estadísticas
// agrupadas salen del agregador sobre el mismo predicado.
type ReportRepository struct {
	DB *sql.DB
}

func (r ReportRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// Querier expone la conexión activa para el agregador.
func (r ReportRepository) Querier() intdb.Queryer {
	return r.db()
}

// UsuarioReporte es una fila del reporte de usuarios: el usuario más el campo
// de perfil que aplica a su tipo.
type UsuarioReporte struct {
	ID            int64      `json:"id"`
	Nombre        string     `json:"nombre"`
	Correo        string     `json:"correo"`
	Tipo          string     `json:"tipo"`
	Estado        string     `json:"estado"`
	FechaCreacion time.Time  `json:"fecha_creacion"`
	UltimoAcceso  *time.Time `json:"ultimo_acceso,omitempty"`
	Carnet        *string    `json:"carnet,omitempty"`
	Carrera       *string    `json:"carrera,omitempty"`
	Departamento  *string    `json:"departamento,omitempty"`
	Facultad      *string    `json:"facultad,omitempty"`
}

const usuarioReporteFrom = `usuarios u
	LEFT JOIN estudiantes e ON u.id = e.usuario_id AND u.tipo = 'estudiante'
	LEFT JOIN profesores p ON u.id = p.usuario_id AND u.tipo = 'profesor'
	LEFT JOIN escuelas esc ON u.id = esc.usuario_id AND u.tipo = 'escuela'`

func (r ReportRepository) UsuariosReporte(ctx context.Context, pred *intdb.Predicate) ([]UsuarioReporte, error) {
	query := `
		SELECT u.id, u.nombre, u.correo, u.tipo, u.estado, u.fecha_creacion, u.ultimo_acceso,
			CASE WHEN u.tipo = 'estudiante' THEN e.carnet END AS carnet,
			CASE WHEN u.tipo = 'estudiante' THEN e.carrera END AS carrera,
			CASE WHEN u.tipo = 'profesor' THEN p.departamento END AS departamento,
			CASE WHEN u.tipo = 'escuela' THEN esc.facultad END AS facultad
		FROM ` + usuarioReporteFrom + ` ` + pred.Where(1) + `
		ORDER BY u.fecha_creacion DESC, u.id DESC`
	rows, err := r.db().QueryContext(ctx, query, pred.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []UsuarioReporte{}
	for rows.Next() {
		var u UsuarioReporte
		err := rows.Scan(&u.ID, &u.Nombre, &u.Correo, &u.Tipo, &u.Estado, &u.FechaCreacion,
			&u.UltimoAcceso, &u.Carnet, &u.Carrera, &u.Departamento, &u.Facultad)
		if err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, rows.Err()
}

// OfertaReporte incluye el total de postulaciones recibidas por la oferta.
type OfertaReporte struct {
	models.Oferta
	EscuelaNombre      *string `json:"escuela_nombre,omitempty"`
	ProfesorNombre     *string `json:"profesor_nombre,omitempty"`
	TotalPostulaciones int64   `json:"total_postulaciones"`
}

func (r ReportRepository) OfertasReporte(ctx context.Context, pred *intdb.Predicate) ([]OfertaReporte, error) {
	query := `
		SELECT o.id, o.nombre, o.tipo, o.descripcion, o.vacantes, o.horas_semana,
			o.fecha_inicio, o.fecha_fin, o.estado, o.escuela_id, o.profesor_id,
			o.promedio_minimo, o.cursos_requeridos, o.beneficio, o.motivo_rechazo,
			o.fecha_creacion, o.fecha_actualizacion,
			(SELECT u.nombre FROM escuelas es JOIN usuarios u ON u.id = es.usuario_id WHERE es.id = o.escuela_id) AS escuela_nombre,
			(SELECT u.nombre FROM profesores pr JOIN usuarios u ON u.id = pr.usuario_id WHERE pr.id = o.profesor_id) AS profesor_nombre,
			(SELECT COUNT(*) FROM postulaciones WHERE oferta_id = o.id) AS total_postulaciones
		FROM ofertas o ` + pred.Where(1) + `
		ORDER BY o.fecha_creacion DESC, o.id DESC`
	rows, err := r.db().QueryContext(ctx, query, pred.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []OfertaReporte{}
	for rows.Next() {
		var o OfertaReporte
		err := rows.Scan(&o.ID, &o.Nombre, &o.Tipo, &o.Descripcion, &o.Vacantes, &o.HorasSemana,
			&o.FechaInicio, &o.FechaFin, &o.Estado, &o.EscuelaID, &o.ProfesorID,
			&o.PromedioMinimo, &o.CursosRequeridos, &o.Beneficio, &o.MotivoRechazo,
			&o.FechaCreacion, &o.FechaActualizacion,
			&o.EscuelaNombre, &o.ProfesorNombre, &o.TotalPostulaciones)
		if err != nil {
			return nil, err
		}
		items = append(items, o)
	}
	return items, rows.Err()
}

const postulacionReporteFrom = `postulaciones p
	JOIN ofertas o ON p.oferta_id = o.id
	JOIN estudiantes e ON p.estudiante_id = e.id
	JOIN usuarios u ON e.usuario_id = u.id`

func (r ReportRepository) PostulacionesReporte(ctx context.Context, pred *intdb.Predicate) ([]models.PostulacionDetalle, error) {
	query := `
		SELECT p.id, p.estudiante_id, p.oferta_id, p.fecha_postulacion, p.estado,
			p.comentario, p.motivacion, p.fecha_actualizacion,
			o.nombre AS oferta_nombre, o.tipo AS oferta_tipo, o.escuela_id,
			e.carnet AS estudiante_carnet, u.nombre AS estudiante_nombre
		FROM ` + postulacionReporteFrom + ` ` + pred.Where(1) + `
		ORDER BY p.fecha_postulacion DESC, p.id DESC`
	rows, err := r.db().QueryContext(ctx, query, pred.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.PostulacionDetalle{}
	for rows.Next() {
		var d models.PostulacionDetalle
		err := rows.Scan(&d.ID, &d.EstudianteID, &d.OfertaID, &d.FechaPostulacion, &d.Estado,
			&d.Comentario, &d.Motivacion, &d.FechaActualizacion,
			&d.OfertaNombre, &d.OfertaTipo, &d.EscuelaID,
			&d.EstudianteCarnet, &d.EstudianteNombre)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

const beneficioReporteFrom = `beneficios_economicos be
	JOIN postulaciones p ON be.postulacion_id = p.id
	JOIN ofertas o ON p.oferta_id = o.id
	JOIN estudiantes e ON p.estudiante_id = e.id
	JOIN usuarios u ON e.usuario_id = u.id`

func (r ReportRepository) BeneficiosReporte(ctx context.Context, pred *intdb.Predicate) ([]models.BeneficioDetalle, error) {
	query := `
		SELECT be.id, be.postulacion_id, be.tipo, be.porcentaje_exoneracion, be.monto_por_hora,
			be.total_horas, be.monto_total, be.estado, be.fecha_creacion, be.fecha_actualizacion,
			o.nombre AS oferta_nombre, o.tipo AS oferta_tipo, p.estado AS postulacion_estado,
			u.nombre AS estudiante_nombre
		FROM ` + beneficioReporteFrom + ` ` + pred.Where(1) + `
		ORDER BY be.fecha_creacion DESC, be.id DESC`
	rows, err := r.db().QueryContext(ctx, query, pred.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.BeneficioDetalle{}
	for rows.Next() {
		var d models.BeneficioDetalle
		err := rows.Scan(&d.ID, &d.PostulacionID, &d.Tipo, &d.PorcentajeExoneracion, &d.MontoPorHora,
			&d.TotalHoras, &d.MontoTotal, &d.Estado, &d.FechaCreacion, &d.FechaActualizacion,
			&d.OfertaNombre, &d.OfertaTipo, &d.PostulacionEstado, &d.EstudianteNombre)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// ActividadDiaria es una fila de actividad por día con el desglose por
// categoría que corresponda a la serie (tipos de usuario, tipos de oferta o
// estados de postulación).
type ActividadDiaria struct {
	Fecha    string           `json:"fecha"`
	Total    int64            `json:"total"`
	Desglose map[string]int64 `json:"desglose"`
}

func (r ReportRepository) actividadPorDia(ctx context.Context, query string, desde, hasta time.Time, categorias []string) ([]ActividadDiaria, error) {
	rows, err := r.db().QueryContext(ctx, query, desde, hasta)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []ActividadDiaria{}
	for rows.Next() {
		var d ActividadDiaria
		var fecha time.Time
		counts := make([]int64, len(categorias))
		dest := []any{&fecha, &d.Total}
		for i := range counts {
			dest = append(dest, &counts[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		d.Fecha = fecha.Format("2006-01-02")
		d.Desglose = make(map[string]int64, len(categorias))
		for i, c := range categorias {
			d.Desglose[c] = counts[i]
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r ReportRepository) UsuariosPorDia(ctx context.Context, desde, hasta time.Time) ([]ActividadDiaria, error) {
	const query = `
		SELECT DATE(fecha_creacion) AS fecha, COUNT(*) AS total,
			SUM(CASE WHEN tipo = 'estudiante' THEN 1 ELSE 0 END) AS estudiantes,
			SUM(CASE WHEN tipo = 'profesor' THEN 1 ELSE 0 END) AS profesores,
			SUM(CASE WHEN tipo = 'escuela' THEN 1 ELSE 0 END) AS escuelas,
			SUM(CASE WHEN tipo = 'admin' THEN 1 ELSE 0 END) AS administradores
		FROM usuarios
		WHERE fecha_creacion BETWEEN $1 AND $2
		GROUP BY DATE(fecha_creacion)
		ORDER BY fecha`
	return r.actividadPorDia(ctx, query, desde, hasta,
		[]string{"estudiantes", "profesores", "escuelas", "administradores"})
}

func (r ReportRepository) OfertasPorDia(ctx context.Context, desde, hasta time.Time) ([]ActividadDiaria, error) {
	const query = `
		SELECT DATE(fecha_creacion) AS fecha, COUNT(*) AS total,
			SUM(CASE WHEN tipo = 'Asistencia' THEN 1 ELSE 0 END) AS asistencias,
			SUM(CASE WHEN tipo = 'Tutoría' THEN 1 ELSE 0 END) AS tutorias,
			SUM(CASE WHEN tipo = 'Proyecto' THEN 1 ELSE 0 END) AS proyectos
		FROM ofertas
		WHERE fecha_creacion BETWEEN $1 AND $2
		GROUP BY DATE(fecha_creacion)
		ORDER BY fecha`
	return r.actividadPorDia(ctx, query, desde, hasta,
		[]string{"asistencias", "tutorias", "proyectos"})
}

func (r ReportRepository) PostulacionesPorDia(ctx context.Context, desde, hasta time.Time) ([]ActividadDiaria, error) {
	const query = `
		SELECT DATE(fecha_postulacion) AS fecha, COUNT(*) AS total,
			SUM(CASE WHEN estado = 'aprobada' THEN 1 ELSE 0 END) AS aprobadas,
			SUM(CASE WHEN estado = 'rechazada' THEN 1 ELSE 0 END) AS rechazadas,
			SUM(CASE WHEN estado = 'pendiente' THEN 1 ELSE 0 END) AS pendientes,
			SUM(CASE WHEN estado = 'cancelada' THEN 1 ELSE 0 END) AS canceladas
		FROM postulaciones
		WHERE fecha_postulacion BETWEEN $1 AND $2
		GROUP BY DATE(fecha_postulacion)
		ORDER BY fecha`
	return r.actividadPorDia(ctx, query, desde, hasta,
		[]string{"aprobadas", "rechazadas", "pendientes", "canceladas"})
}

// AccesoPorHora cuenta los últimos accesos agrupados por hora del día.
type AccesoPorHora struct {
	Hora  int   `json:"hora"`
	Total int64 `json:"total_accesos"`
}

func (r ReportRepository) AccesosPorHora(ctx context.Context, desde, hasta time.Time) ([]AccesoPorHora, error) {
	const query = `
		SELECT EXTRACT(HOUR FROM ultimo_acceso)::int AS hora, COUNT(*) AS total_accesos
		FROM usuarios
		WHERE ultimo_acceso BETWEEN $1 AND $2
		GROUP BY hora
		ORDER BY hora`
	rows, err := r.db().QueryContext(ctx, query, desde, hasta)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []AccesoPorHora{}
	for rows.Next() {
		var a AccesoPorHora
		if err := rows.Scan(&a.Hora, &a.Total); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// ActividadReciente es una fila del feed de actividad del dashboard.
type ActividadReciente struct {
	Tipo    string    `json:"tipo"`
	ID      int64     `json:"id"`
	Detalle string    `json:"detalle"`
	Fecha   time.Time `json:"fecha"`
}

// RecentesDashboard une los últimos usuarios y ofertas creados, acotado a las
// diez filas más recientes del conjunto.
func (r ReportRepository) RecentesDashboard(ctx context.Context) ([]ActividadReciente, error) {
	const query = `
		(SELECT 'usuario' AS tipo, id, nombre AS detalle, fecha_creacion AS fecha
		 FROM usuarios ORDER BY fecha_creacion DESC LIMIT 5)
		UNION ALL
		(SELECT 'oferta' AS tipo, id, nombre AS detalle, fecha_creacion AS fecha
		 FROM ofertas ORDER BY fecha_creacion DESC LIMIT 5)
		ORDER BY fecha DESC
		LIMIT 10`
	return r.scanActividad(ctx, query)
}

// RecentesPorDias une usuarios, ofertas y postulaciones creados dentro de la
// ventana de días. La ventana viaja como parámetro, nunca interpolada.
func (r ReportRepository) RecentesPorDias(ctx context.Context, dias, limite int) ([]ActividadReciente, error) {
	const query = `
		SELECT 'usuario' AS tipo, id, nombre AS detalle, fecha_creacion AS fecha
		FROM usuarios
		WHERE fecha_creacion > NOW() - ($1 * INTERVAL '1 day')
		UNION
		SELECT 'oferta' AS tipo, id, nombre AS detalle, fecha_creacion AS fecha
		FROM ofertas
		WHERE fecha_creacion > NOW() - ($1 * INTERVAL '1 day')
		UNION
		SELECT 'postulacion' AS tipo, id, 'Nueva postulación' AS detalle, fecha_postulacion AS fecha
		FROM postulaciones
		WHERE fecha_postulacion > NOW() - ($1 * INTERVAL '1 day')
		ORDER BY fecha DESC
		LIMIT $2`
	return r.scanActividad(ctx, query, dias, limite)
}

func (r ReportRepository) scanActividad(ctx context.Context, query string, args ...any) ([]ActividadReciente, error) {
	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []ActividadReciente{}
	for rows.Next() {
		var a ActividadReciente
		if err := rows.Scan(&a.Tipo, &a.ID, &a.Detalle, &a.Fecha); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// CountUsuarios y CountOfertas alimentan los contadores del dashboard.
func (r ReportRepository) CountUsuarios(ctx context.Context, estado string) (int, error) {
	pred := intdb.NewPredicate("").AddEq("estado", estado)
	return intdb.CountWhere(ctx, r.db(), "usuarios", pred)
}

func (r ReportRepository) CountOfertas(ctx context.Context, estado string) (int, error) {
	pred := intdb.NewPredicate("").AddEq("estado", estado)
	return intdb.CountWhere(ctx, r.db(), "ofertas", pred)
}
