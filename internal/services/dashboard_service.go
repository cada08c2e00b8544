package services

import (
	"context"

	intdb "pgat/internal/db"
	"pgat/internal/domain"
	"pgat/internal/domain/models"
	"pgat/internal/repositories"
	"pgat/internal/utils"
)

type DashboardService struct {
	ReportRepo repositories.ReportRepository
	RequestID  string
}

// DashboardStats son los seis contadores de cabecera del panel.
type DashboardStats struct {
	TotalUsers      int `json:"totalUsers"`
	ActiveUsers     int `json:"activeUsers"`
	PendingApproval int `json:"pendingApproval"`
	TotalOffers     int `json:"totalOffers"`
	ActivePosts     int `json:"activePosts"`
	PendingPosts    int `json:"pendingPosts"`
}

type Dashboard struct {
	Stats          DashboardStats                   `json:"stats"`
	RecentActivity []repositories.ActividadReciente `json:"recentActivity"`
}

// Stats arma el panel en una sola pasada: los seis contadores y el feed de
// actividad reciente corren en paralelo sobre el pool.
func (s DashboardService) Stats(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	err := intdb.Parallel(
		func() (err error) {
			d.Stats.TotalUsers, err = s.ReportRepo.CountUsuarios(ctx, "")
			return
		},
		func() (err error) {
			d.Stats.ActiveUsers, err = s.ReportRepo.CountUsuarios(ctx, models.EstadoActivo)
			return
		},
		func() (err error) {
			d.Stats.PendingApproval, err = s.ReportRepo.CountUsuarios(ctx, models.EstadoInactivo)
			return
		},
		func() (err error) {
			d.Stats.TotalOffers, err = s.ReportRepo.CountOfertas(ctx, "")
			return
		},
		func() (err error) {
			d.Stats.ActivePosts, err = s.ReportRepo.CountOfertas(ctx, models.OfertaActiva)
			return
		},
		func() (err error) {
			d.Stats.PendingPosts, err = s.ReportRepo.CountOfertas(ctx, models.OfertaPendiente)
			return
		},
		func() (err error) {
			d.RecentActivity, err = s.ReportRepo.RecentesDashboard(ctx)
			return
		},
	)
	if err != nil {
		return Dashboard{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "dashboard", "stats", "ok")
	return d, nil
}

const (
	defaultActivityLimit = 10
	defaultActivityDays  = 30
)

// Actividad devuelve el feed combinado de los últimos días. Los valores
// fuera de rango caen a los predeterminados en lugar de fallar.
func (s DashboardService) Actividad(ctx context.Context, limit, days int) ([]repositories.ActividadReciente, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if days <= 0 {
		days = defaultActivityDays
	}
	items, err := s.ReportRepo.RecentesPorDias(ctx, days, limit)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "dashboard", "actividad", "dias="+formatID(int64(days)))
	return items, nil
}
