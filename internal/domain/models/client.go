package models

import "time"

type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}
