package storage

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

// ConnectPostgres устанавливает соединение с PostgreSQL
func ConnectPostgres(dsn string) *sql.DB {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("❌ Ошибка подключения к PostgreSQL: %v", err)
	}

	// Настройка пула соединений
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	// Проверка соединения
	if err := db.Ping(); err != nil {
		log.Fatalf("❌ PostgreSQL не отвечает: %v", err)
	}

	log.Info("✅ Подключение к PostgreSQL успешно")
	return db
}

// Migrate создаёт таблицы каталога, корзинки и курса, если их ещё нет
func Migrate(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id           BIGSERIAL PRIMARY KEY,
			name         TEXT NOT NULL DEFAULT '',
			artikul      TEXT NOT NULL DEFAULT '',
			barcode      BIGINT NOT NULL UNIQUE,
			category     TEXT NOT NULL DEFAULT '',
			postavshik   TEXT NOT NULL DEFAULT '',
			stock        DOUBLE PRECISION NOT NULL DEFAULT 0,
			cena_postavki BIGINT NOT NULL DEFAULT 0,
			cena_prodaji  BIGINT NOT NULL DEFAULT 0,
			skidka       DOUBLE PRECISION NOT NULL DEFAULT 0,
			brend        TEXT NOT NULL DEFAULT '',
			srok         TEXT NOT NULL DEFAULT '',
			edinitsa_izmereniya TEXT NOT NULL DEFAULT '',
			weight       DOUBLE PRECISION,
			price        DOUBLE PRECISION,
			final_price  DOUBLE PRECISION
		)`,
		`CREATE TABLE IF NOT EXISTS basket (
			id             BIGSERIAL PRIMARY KEY,
			name           TEXT NOT NULL DEFAULT '',
			artikul        TEXT NOT NULL DEFAULT '',
			barcode        BIGINT NOT NULL UNIQUE,
			weight         DOUBLE PRECISION NOT NULL DEFAULT 0,
			price          DOUBLE PRECISION NOT NULL DEFAULT 0,
			price_postavki DOUBLE PRECISION NOT NULL DEFAULT 0,
			shtuk          INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS exchange_rate (
			id   INTEGER PRIMARY KEY,
			rate DOUBLE PRECISION NOT NULL
		)`,
		`INSERT INTO exchange_rate (id, rate) VALUES (1, 1.0) ON CONFLICT (id) DO NOTHING`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
