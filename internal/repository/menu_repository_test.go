package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

const listQuery = "SELECT name, description, price, image_ref, popular FROM menu_items ORDER BY position, id"

var menuColumns = []string{"name", "description", "price", "image_ref", "popular"}

func TestListItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).WillReturnRows(
		sqlmock.NewRows(menuColumns).
			AddRow("MARGARITA CLÁSICA", "La reina de Nápoles.", "170.00", "/images/pizza_3.jpeg", true).
			AddRow("QUESO INDIVIDUAL", "Cuatro quesos.", "79.00", "/images/pizza_7.jpeg", false),
	)

	items, err := NewMenuRepo(db).ListItems(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !items[0].Popular || !items[0].Price.Equal(decimal.RequireFromString("170")) {
		t.Errorf("unexpected first item %+v", items[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListItems_Empty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).WillReturnRows(sqlmock.NewRows(menuColumns))

	if _, err := NewMenuRepo(db).ListItems(context.Background()); !errors.Is(err, ErrEmptyMenu) {
		t.Fatalf("expected ErrEmptyMenu, got %v", err)
	}
}

func TestListItems_BadPrice(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).WillReturnRows(
		sqlmock.NewRows(menuColumns).AddRow("X", "", "gratis", "", false),
	)
	if _, err := NewMenuRepo(db).ListItems(context.Background()); !errors.Is(err, ErrInvalidRow) {
		t.Fatalf("expected ErrInvalidRow, got %v", err)
	}
}

func TestListItems_QueryError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	boom := errors.New("boom")
	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).WillReturnError(boom)
	if _, err := NewMenuRepo(db).ListItems(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected query error, got %v", err)
	}
}
