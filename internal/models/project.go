package models

import "time"

// Project is the app or service a number is being verified for.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateProjectRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Code string `json:"code" validate:"required,max=64"`
}

type UpdateProjectRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Code *string `json:"code,omitempty" validate:"omitempty,min=1,max=64"`
}
