package storage

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// RateRepo — хранение курса доллара. Запись одна, история не ведётся.
type RateRepo struct {
	db *sql.DB
}

func NewRateRepo(db *sql.DB) *RateRepo {
	return &RateRepo{db: db}
}

// Rate возвращает текущий курс. Если записи нет — 1.0 с предупреждением,
// расчёт цен из-за этого не падает.
func (r *RateRepo) Rate(ctx context.Context) (float64, error) {
	var rate float64
	err := r.db.QueryRowContext(ctx,
		`SELECT rate FROM exchange_rate WHERE id = 1`).Scan(&rate)
	if err == sql.ErrNoRows {
		log.Warn("⚠️ Курс доллара не найден в базе, используется 1.0")
		return 1.0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("exchange rate get: %w", err)
	}
	return rate, nil
}

// SetRate обновляет курс
func (r *RateRepo) SetRate(ctx context.Context, rate float64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO exchange_rate (id, rate) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET rate = EXCLUDED.rate`, rate)
	if err != nil {
		return fmt.Errorf("exchange rate set: %w", err)
	}
	log.Infof("Курс доллара обновлён: %v", rate)
	return nil
}
