package models

import "time"

type Country struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	PhoneCode string    `json:"phone_code"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCountryRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Code      string `json:"code" validate:"required,max=10"`
	PhoneCode string `json:"phone_code,omitempty" validate:"omitempty,max=10"`
}

type UpdateCountryRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Code      *string `json:"code,omitempty" validate:"omitempty,min=1,max=10"`
	PhoneCode *string `json:"phone_code,omitempty" validate:"omitempty,max=10"`
}
