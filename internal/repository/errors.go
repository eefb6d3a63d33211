// Package repository contains data access logic separated from HTTP
// handlers.  The only persisted data is the menu.
package repository

import "errors"

// ErrEmptyMenu is returned when the menu table has no rows.  Starting with
// an empty catalog would make every order impossible, so callers treat it
// as fatal.
var ErrEmptyMenu = errors.New("menu is empty")

// ErrInvalidRow is returned when a stored row cannot become a catalog item.
var ErrInvalidRow = errors.New("invalid menu row")
