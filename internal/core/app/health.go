package app

import (
	"context"
	"fmt"
	"time"
)

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	last := s.app.LastResult()
	if last == nil {
		status.Status = "degraded"
		status.Components["graph"] = "no completed analysis"
	} else {
		status.Components["graph"] = fmt.Sprintf("ok (%d nodes, %d edges)", last.Graph.Len(), last.Graph.EdgeCount())
		status.Components["catalog"] = fmt.Sprintf("ok (%d modules, %d resolved)", len(last.Catalog.Modules), last.Catalog.ResolvedCount())
		if n := len(last.Packages.Missing); n > 0 {
			status.Components["packages"] = fmt.Sprintf("%d missing", n)
		}
	}

	if s.app.history != nil {
		status.Components["history"] = "ok"
	} else if s.app.Config.History.Enabled {
		status.Status = "degraded"
		status.Components["history"] = "missing but enabled in config"
	}

	if ctx.Err() != nil {
		status.Status = "stopping"
	}
	return status
}
