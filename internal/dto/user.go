package dto

// ── user DTOs ──

// UserResponse is the sanitized account view.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Shift    string `json:"shift"`
	IsActive bool   `json:"is_active"`
}

// CreateUserRequest creates a dashboard account (admin only).
type CreateUserRequest struct {
	Username string `json:"username"  binding:"required,min=2,max=50"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Password string `json:"password"  binding:"required,min=8,max=64"`
	Role     string `json:"role"      binding:"required,oneof=admin staff"`
	Shift    string `json:"shift"     binding:"omitempty,oneof=morning night"`
}

// UpdateUserRequest updates mutable account fields. Nil means unchanged.
type UpdateUserRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=2,max=100"`
	Role     *string `json:"role"      binding:"omitempty,oneof=admin staff"`
	Shift    *string `json:"shift"     binding:"omitempty,oneof=morning night"`
	IsActive *bool   `json:"is_active"`
}

// ProfileResponse is one entry of the employee registry.
type ProfileResponse struct {
	Name  string `json:"name"`
	Shift string `json:"shift"`
	Role  string `json:"role"`
}
