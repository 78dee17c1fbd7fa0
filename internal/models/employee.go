package models

import "time"

type Employee struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Salary    float64   `json:"salary"`
	JoinedAt  time.Time `json:"joinedAt"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type EmployeeRequest struct {
	Name     string  `json:"name" validate:"required"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email" validate:"required,email"`
	Role     string  `json:"role" validate:"required,oneof=admin manager appraiser cashier staff"`
	Salary   float64 `json:"salary" validate:"gte=0"`
	JoinedAt string  `json:"joinedAt" validate:"omitempty,datetime=2006-01-02"`
	IsActive *bool   `json:"isActive"`
}
