package model

import "github.com/shopspring/decimal"

// CatalogItem is a single orderable entry of the menu.  Items are
// immutable once the catalog is built and are addressed everywhere by
// their Name, which must be unique within a catalog.
//
// Fields:
//  Name        – unique identifier, e.g. "PEPPERONI CLÁSICA".
//  Description – free text shown under the name.
//  Price       – unit price, never negative.
//  ImageRef    – opaque reference to the item picture.
//  Popular     – highlighted in the "popular" strip; false by default.
type CatalogItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageRef    string          `json:"image_ref"`
	Popular     bool            `json:"popular"`
}
