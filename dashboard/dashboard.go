// Package dashboard — служебный статус сервиса для мониторинга.
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"
)

// ProductCounter — источник размера каталога для статуса
type ProductCounter interface {
	Count(ctx context.Context) (int, error)
}

// Status — краткая сводка о сервисе
type Status struct {
	Uptime     string `json:"uptime"`
	Goroutines int    `json:"goroutines"`
	Products   int    `json:"products"`
	Status     string `json:"status"`
}

// Dashboard отдаёт статус по HTTP
type Dashboard struct {
	catalog   ProductCounter
	startedAt time.Time
}

func New(catalog ProductCounter) *Dashboard {
	return &Dashboard{catalog: catalog, startedAt: time.Now()}
}

func (d *Dashboard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := Status{
		Uptime:     time.Since(d.startedAt).String(),
		Goroutines: runtime.NumGoroutine(),
		Status:     "ok",
	}

	// Каталог недоступен — статус degraded, но ответ отдаём
	if count, err := d.catalog.Count(r.Context()); err != nil {
		status.Status = "degraded"
	} else {
		status.Products = count
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
