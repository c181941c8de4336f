package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// BasketRepo — репозиторий корзинки. Корзинка одна на всех админов,
// позиции уникальны по баркоду.
type BasketRepo struct {
	db *sql.DB
}

func NewBasketRepo(db *sql.DB) *BasketRepo {
	return &BasketRepo{db: db}
}

// Items возвращает все позиции корзинки в порядке добавления
func (r *BasketRepo) Items(ctx context.Context) ([]BasketItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, artikul, barcode, weight, price, price_postavki, shtuk
		 FROM basket ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("basket items: %w", err)
	}
	defer rows.Close()

	var items []BasketItem
	for rows.Next() {
		var it BasketItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Artikul, &it.Barcode,
			&it.Weight, &it.Price, &it.PricePostavki, &it.Shtuk); err != nil {
			return nil, fmt.Errorf("basket scan: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ByID — позиция по внутреннему id, (nil, nil) если нет
func (r *BasketRepo) ByID(ctx context.Context, id int64) (*BasketItem, error) {
	var it BasketItem
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, artikul, barcode, weight, price, price_postavki, shtuk
		 FROM basket WHERE id = $1`, id).
		Scan(&it.ID, &it.Name, &it.Artikul, &it.Barcode,
			&it.Weight, &it.Price, &it.PricePostavki, &it.Shtuk)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("basket by id %d: %w", id, err)
	}
	return &it, nil
}

// ByBarcode — позиция по баркоду, (nil, nil) если нет
func (r *BasketRepo) ByBarcode(ctx context.Context, barcode int64) (*BasketItem, error) {
	var it BasketItem
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, artikul, barcode, weight, price, price_postavki, shtuk
		 FROM basket WHERE barcode = $1`, barcode).
		Scan(&it.ID, &it.Name, &it.Artikul, &it.Barcode,
			&it.Weight, &it.Price, &it.PricePostavki, &it.Shtuk)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("basket by barcode %d: %w", barcode, err)
	}
	return &it, nil
}

// Upsert добавляет позицию; если баркод уже в корзинке — количество складывается
func (r *BasketRepo) Upsert(ctx context.Context, it BasketItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO basket (name, artikul, barcode, weight, price, price_postavki, shtuk)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (barcode) DO UPDATE SET shtuk = basket.shtuk + EXCLUDED.shtuk`,
		it.Name, it.Artikul, it.Barcode, it.Weight, it.Price, it.PricePostavki, it.Shtuk)
	if err != nil {
		return fmt.Errorf("basket upsert %d: %w", it.Barcode, err)
	}
	return nil
}

// SetShtuk выставляет количество для позиции
func (r *BasketRepo) SetShtuk(ctx context.Context, id int64, shtuk int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE basket SET shtuk = $2 WHERE id = $1`, id, shtuk)
	if err != nil {
		return fmt.Errorf("basket set shtuk %d: %w", id, err)
	}
	return nil
}

// Remove удаляет позицию из корзинки
func (r *BasketRepo) Remove(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM basket WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("basket remove %d: %w", id, err)
	}
	return nil
}

// Clear очищает корзинку целиком
func (r *BasketRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM basket`)
	if err != nil {
		return fmt.Errorf("basket clear: %w", err)
	}
	return nil
}
