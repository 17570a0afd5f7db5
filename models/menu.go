package models

import "time"

type Category struct {
	Name  string `json:"name" bson:"name"`
	Slug  string `json:"slug" bson:"slug"`
	Image string `json:"image,omitempty" bson:"image,omitempty"`
}

type MenuItem struct {
	ItemID       string    `json:"id" bson:"itemid"`
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	Price        float64   `json:"price" bson:"price"`
	PromoPrice   *float64  `json:"promoPrice,omitempty" bson:"promoPrice,omitempty"`
	Image        string    `json:"image,omitempty" bson:"image,omitempty"`
	CategorySlug string    `json:"categorySlug" bson:"categorySlug"`
	Badges       []string  `json:"badges,omitempty" bson:"badges,omitempty"`
	Available    bool      `json:"available" bson:"available"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

type MenuResponse struct {
	Categories []Category `json:"categories"`
	Items      []MenuItem `json:"items"`
}
