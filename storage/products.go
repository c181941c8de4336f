package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const productColumns = `id, name, artikul, barcode, category, postavshik, stock,
	cena_postavki, cena_prodaji, skidka, brend, srok, edinitsa_izmereniya,
	weight, price, final_price`

// ProductRepo — репозиторий каталога товаров
type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	var weight, price, finalPrice sql.NullFloat64
	err := row.Scan(
		&p.ID, &p.Name, &p.Artikul, &p.Barcode, &p.Category, &p.Postavshik,
		&p.Stock, &p.CenaPostavki, &p.CenaProdaji, &p.Skidka,
		&p.Brend, &p.Srok, &p.Edinitsa,
		&weight, &price, &finalPrice,
	)
	if err != nil {
		return nil, err
	}
	if weight.Valid {
		p.Weight = &weight.Float64
	}
	if price.Valid {
		p.Price = &price.Float64
	}
	if finalPrice.Valid {
		p.FinalPrice = &finalPrice.Float64
	}
	return &p, nil
}

// ByBarcode возвращает товар по баркоду, (nil, nil) если не найден
func (r *ProductRepo) ByBarcode(ctx context.Context, barcode int64) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE barcode = $1 LIMIT 1`, barcode)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("products by barcode %d: %w", barcode, err)
	}
	return p, nil
}

// Add добавляет новую карточку товара. Weight/Price/FinalPrice пишутся
// как есть: nil останется NULL до первого заполнения через панель баркодов.
func (r *ProductRepo) Add(ctx context.Context, p Product) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products
			(name, artikul, barcode, category, postavshik, stock,
			 cena_postavki, cena_prodaji, skidka, brend, srok, edinitsa_izmereniya,
			 weight, price, final_price)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		p.Name, p.Artikul, p.Barcode, p.Category, p.Postavshik, p.Stock,
		p.CenaPostavki, p.CenaProdaji, p.Skidka, p.Brend, p.Srok, p.Edinitsa,
		nullable(p.Weight), nullable(p.Price), nullable(p.FinalPrice))
	if err != nil {
		return fmt.Errorf("products add %d: %w", p.Barcode, err)
	}
	return nil
}

// UpdateWeightPrice обновляет только переданные (не nil) поля
func (r *ProductRepo) UpdateWeightPrice(ctx context.Context, barcode int64, weight, price, finalPrice *float64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET
			weight      = COALESCE($2, weight),
			price       = COALESCE($3, price),
			final_price = COALESCE($4, final_price)
		 WHERE barcode = $1`,
		barcode, nullable(weight), nullable(price), nullable(finalPrice))
	if err != nil {
		return fmt.Errorf("products update %d: %w", barcode, err)
	}
	return nil
}

// UpdateName меняет название по внутреннему id
func (r *ProductRepo) UpdateName(ctx context.Context, id int64, name string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE products SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return fmt.Errorf("products rename %d: %w", id, err)
	}
	return nil
}

// Delete удаляет товар по баркоду
func (r *ProductRepo) Delete(ctx context.Context, barcode int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE barcode = $1`, barcode)
	if err != nil {
		return fmt.Errorf("products delete %d: %w", barcode, err)
	}
	return nil
}

// List — страница каталога в порядке добавления
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("products list: %w", err)
	}
	defer rows.Close()

	var result []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("products list scan: %w", err)
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

// All — весь каталог без ограничения, для экспорта
func (r *ProductRepo) All(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("products all: %w", err)
	}
	defer rows.Close()

	var result []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("products all scan: %w", err)
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

// Count — сколько всего товаров в каталоге
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("products count: %w", err)
	}
	return total, nil
}

// Stats — сводка по final_price и остаткам для отчётов
func (r *ProductRepo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	var maxP, minP, avgP sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(final_price), MIN(final_price),
			ROUND(AVG(final_price)::numeric, 2), COALESCE(SUM(stock), 0)
		 FROM products`).Scan(&maxP, &minP, &avgP, &s.TotalStock)
	if err != nil {
		return Stats{}, fmt.Errorf("products stats: %w", err)
	}
	if maxP.Valid {
		s.MaxPrice = &maxP.Float64
	}
	if minP.Valid {
		s.MinPrice = &minP.Float64
	}
	if avgP.Valid {
		s.AvgPrice = &avgP.Float64
	}
	return s, nil
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
