package models

import (
	"github.com/AminovSarvarbek/telegramshopfront/helper"
)

// Product is a catalog entry served by GET /menu. It is immutable from the
// storefront's side; only the admin endpoints mutate the catalog.
type Product struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       helper.Cents `json:"price"`
	Image       string       `json:"image"`
}

// ProductInput is the admin create/update form. Image bytes travel as a
// multipart part; ImageURL is sent instead when an existing image is kept
// on edit.
type ProductInput struct {
	Name        string       `json:"name" validate:"required,min=2,max=100"`
	Description string       `json:"description"`
	Price       helper.Cents `json:"price" validate:"required,gt=0"`
	ImageName   string       `json:"image_name"`
	ImageData   []byte       `json:"-"`
	ImageURL    string       `json:"image_url"`
}
