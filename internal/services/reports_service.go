package services

import (
	"context"
	"time"

	intdb "pgat/internal/db"
	"pgat/internal/domain"
	"pgat/internal/domain/models"
	"pgat/internal/repositories"
	"pgat/internal/utils"
)

// ReportsService genera los cinco reportes administrativos. Todos comparten
// el mismo esquema: un predicado compilado una sola vez alimenta la consulta
// de datos y cada consulta de estadísticas, y todas corren en paralelo.
type ReportsService struct {
	ReportRepo repositories.ReportRepository
	RequestID  string

	// Now permite fijar el reloj en pruebas; nil usa time.Now.
	Now func() time.Time
}

func (s ReportsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ReportMetadata describe cómo se generó el reporte.
type ReportMetadata struct {
	GeneratedAt  time.Time         `json:"generatedAt"`
	Filters      map[string]string `json:"filters"`
	TotalRecords int               `json:"totalRecords"`
}

type Report struct {
	Metadata   ReportMetadata               `json:"metadata"`
	Statistics map[string][]intdb.GroupStat `json:"statistics"`
	Data       any                          `json:"data"`
}

func metadataFilters(period string, r intdb.DateRange, extra map[string]string) map[string]string {
	f := map[string]string{"period": period}
	if f["period"] == "" {
		f["period"] = "all"
	}
	if r.Start != nil {
		f["startDate"] = r.Start.Format("2006-01-02")
	}
	if r.End != nil {
		f["endDate"] = r.End.Format("2006-01-02")
	}
	for k, v := range extra {
		if v == "" {
			v = "Todos"
		}
		f[k] = v
	}
	return f
}

type UsersReportFilter struct {
	Period string
	Tipo   string
	Estado string
}

// UsersReport lista los usuarios del período con su campo de perfil, más los
// desgloses por tipo y por estado sobre el mismo recorte temporal.
func (s ReportsService) UsersReport(ctx context.Context, f UsersReportFilter) (Report, error) {
	rng := intdb.ResolvePeriod(f.Period, s.now())

	dataPred := intdb.NewPredicate("").
		Add(rng.Filters("u.fecha_creacion")...).
		AddEq("u.tipo", f.Tipo).
		AddEq("u.estado", f.Estado)

	byTypePred := intdb.NewPredicate("").
		Add(rng.Filters("fecha_creacion")...).
		AddEq("estado", f.Estado)
	byStatusPred := intdb.NewPredicate("").
		Add(rng.Filters("fecha_creacion")...).
		AddEq("tipo", f.Tipo)

	var (
		data     []repositories.UsuarioReporte
		byType   []intdb.GroupStat
		byStatus []intdb.GroupStat
	)
	err := intdb.Parallel(
		func() (err error) {
			data, err = s.ReportRepo.UsuariosReporte(ctx, dataPred)
			return
		},
		func() (err error) {
			byType, err = intdb.GroupCount(ctx, s.ReportRepo.Querier(), "usuarios", byTypePred, "tipo")
			return
		},
		func() (err error) {
			byStatus, err = intdb.GroupCount(ctx, s.ReportRepo.Querier(), "usuarios", byStatusPred, "estado")
			return
		},
	)
	if err != nil {
		return Report{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "reportes", "usuarios", "registros="+formatID(int64(len(data))))
	return Report{
		Metadata: ReportMetadata{
			GeneratedAt:  s.now(),
			Filters:      metadataFilters(f.Period, rng, map[string]string{"tipo": f.Tipo, "estado": f.Estado}),
			TotalRecords: len(data),
		},
		Statistics: map[string][]intdb.GroupStat{"byType": byType, "byStatus": byStatus},
		Data:       data,
	}, nil
}

// OffersReport lista las ofertas del período con su total de postulaciones y
// el desglose por tipo.
func (s ReportsService) OffersReport(ctx context.Context, period string) (Report, error) {
	rng := intdb.ResolvePeriod(period, s.now())
	dataPred := intdb.NewPredicate("").Add(rng.Filters("o.fecha_creacion")...)
	statsPred := intdb.NewPredicate("").Add(rng.Filters("fecha_creacion")...)

	var (
		data   []repositories.OfertaReporte
		byType []intdb.GroupStat
	)
	err := intdb.Parallel(
		func() (err error) {
			data, err = s.ReportRepo.OfertasReporte(ctx, dataPred)
			return
		},
		func() (err error) {
			byType, err = intdb.GroupCount(ctx, s.ReportRepo.Querier(), "ofertas", statsPred, "tipo")
			return
		},
	)
	if err != nil {
		return Report{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "reportes", "ofertas", "registros="+formatID(int64(len(data))))
	return Report{
		Metadata: ReportMetadata{
			GeneratedAt:  s.now(),
			Filters:      metadataFilters(period, rng, nil),
			TotalRecords: len(data),
		},
		Statistics: map[string][]intdb.GroupStat{"byType": byType},
		Data:       data,
	}, nil
}

// ApplicationsReport lista las postulaciones del período con los datos de la
// oferta y del estudiante, más el desglose por estado.
func (s ReportsService) ApplicationsReport(ctx context.Context, period string) (Report, error) {
	rng := intdb.ResolvePeriod(period, s.now())
	dataPred := intdb.NewPredicate("").Add(rng.Filters("p.fecha_postulacion")...)
	statsPred := intdb.NewPredicate("").Add(rng.Filters("fecha_postulacion")...)

	var (
		data     []models.PostulacionDetalle
		byStatus []intdb.GroupStat
	)
	err := intdb.Parallel(
		func() (err error) {
			data, err = s.ReportRepo.PostulacionesReporte(ctx, dataPred)
			return
		},
		func() (err error) {
			byStatus, err = intdb.GroupCount(ctx, s.ReportRepo.Querier(), "postulaciones", statsPred, "estado")
			return
		},
	)
	if err != nil {
		return Report{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "reportes", "postulaciones", "registros="+formatID(int64(len(data))))
	return Report{
		Metadata: ReportMetadata{
			GeneratedAt:  s.now(),
			Filters:      metadataFilters(period, rng, nil),
			TotalRecords: len(data),
		},
		Statistics: map[string][]intdb.GroupStat{"byStatus": byStatus},
		Data:       data,
	}, nil
}

// BenefitsReport lista los beneficios económicos del período y el desglose
// por tipo con la suma de montos.
func (s ReportsService) BenefitsReport(ctx context.Context, period string) (Report, error) {
	rng := intdb.ResolvePeriod(period, s.now())
	dataPred := intdb.NewPredicate("").Add(rng.Filters("be.fecha_creacion")...)
	statsPred := intdb.NewPredicate("").Add(rng.Filters("fecha_creacion")...)

	var (
		data   []models.BeneficioDetalle
		byType []intdb.GroupStat
	)
	err := intdb.Parallel(
		func() (err error) {
			data, err = s.ReportRepo.BeneficiosReporte(ctx, dataPred)
			return
		},
		func() (err error) {
			byType, err = intdb.GroupSum(ctx, s.ReportRepo.Querier(), "beneficios_economicos", statsPred, "tipo", "monto_total")
			return
		},
	)
	if err != nil {
		return Report{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "reportes", "beneficios", "registros="+formatID(int64(len(data))))
	return Report{
		Metadata: ReportMetadata{
			GeneratedAt:  s.now(),
			Filters:      metadataFilters(period, rng, nil),
			TotalRecords: len(data),
		},
		Statistics: map[string][]intdb.GroupStat{"byType": byType},
		Data:       data,
	}, nil
}

// ActivityReport resume la actividad del sistema por día y los accesos por
// hora dentro del período.
type ActivityReport struct {
	Metadata struct {
		GeneratedAt time.Time `json:"generatedAt"`
		StartDate   string    `json:"startDate"`
		EndDate     string    `json:"endDate"`
	} `json:"metadata"`
	DailyActivity struct {
		Users        []repositories.ActividadDiaria `json:"users"`
		Offers       []repositories.ActividadDiaria `json:"offers"`
		Applications []repositories.ActividadDiaria `json:"applications"`
	} `json:"dailyActivity"`
	AccessPatterns struct {
		ByHour []repositories.AccesoPorHora `json:"byHour"`
	} `json:"accessPatterns"`
	Summary struct {
		TotalNewUsers        int64 `json:"totalNewUsers"`
		TotalNewOffers       int64 `json:"totalNewOffers"`
		TotalNewApplications int64 `json:"totalNewApplications"`
	} `json:"summary"`
}

func (s ReportsService) Activity(ctx context.Context, period string) (ActivityReport, error) {
	now := s.now()
	rng := intdb.ResolvePeriod(period, now)

	// El reporte de actividad siempre trabaja con un rango concreto: sin
	// período el recorrido cubre todo el historial.
	desde, hasta := now, now
	if rng.Bounded() {
		desde = *rng.Start
		hasta = *rng.End
	} else {
		desde = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	var rep ActivityReport
	err := intdb.Parallel(
		func() (err error) {
			rep.DailyActivity.Users, err = s.ReportRepo.UsuariosPorDia(ctx, desde, hasta)
			return
		},
		func() (err error) {
			rep.DailyActivity.Offers, err = s.ReportRepo.OfertasPorDia(ctx, desde, hasta)
			return
		},
		func() (err error) {
			rep.DailyActivity.Applications, err = s.ReportRepo.PostulacionesPorDia(ctx, desde, hasta)
			return
		},
		func() (err error) {
			rep.AccessPatterns.ByHour, err = s.ReportRepo.AccesosPorHora(ctx, desde, hasta)
			return
		},
	)
	if err != nil {
		return ActivityReport{}, domain.InternalError{Err: err}
	}

	rep.Metadata.GeneratedAt = now
	rep.Metadata.StartDate = desde.Format("2006-01-02")
	rep.Metadata.EndDate = hasta.Format("2006-01-02")
	for _, d := range rep.DailyActivity.Users {
		rep.Summary.TotalNewUsers += d.Total
	}
	for _, d := range rep.DailyActivity.Offers {
		rep.Summary.TotalNewOffers += d.Total
	}
	for _, d := range rep.DailyActivity.Applications {
		rep.Summary.TotalNewApplications += d.Total
	}

	utils.LogEvent(s.RequestID, "reportes", "actividad", "desde="+rep.Metadata.StartDate+" hasta="+rep.Metadata.EndDate)
	return rep, nil
}
