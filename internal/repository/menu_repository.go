package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/blackmouth-booking/internal/model"
)

// MenuRepo reads the catalog from the menu_items table:
//
//	CREATE TABLE menu_items (
//	  id          INT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
//	  position    INT NOT NULL,
//	  name        VARCHAR(120) NOT NULL UNIQUE,
//	  description TEXT NOT NULL,
//	  price       DECIMAL(10,2) NOT NULL,
//	  image_ref   VARCHAR(255) NOT NULL DEFAULT '',
//	  popular     TINYINT(1) NOT NULL DEFAULT 0
//	);
type MenuRepo struct {
	db *sql.DB
}

func NewMenuRepo(db *sql.DB) *MenuRepo {
	return &MenuRepo{db: db}
}

// ListItems returns every menu row in display order.
func (r *MenuRepo) ListItems(ctx context.Context) ([]model.CatalogItem, error) {
	const q = "SELECT name, description, price, image_ref, popular FROM menu_items ORDER BY position, id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.CatalogItem
	for rows.Next() {
		var (
			it    model.CatalogItem
			price string
		)
		if err := rows.Scan(&it.Name, &it.Description, &price, &it.ImageRef, &it.Popular); err != nil {
			return nil, err
		}
		it.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: price %q", ErrInvalidRow, it.Name, price)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyMenu
	}
	return items, nil
}
