package auth

type LoginRequest struct {
	Pin string `json:"pin" binding:"required"`
}

type LoginResponse struct {
	Token      string `json:"token"`
	Role       string `json:"role"`
	EmployeeID uint   `json:"employee_id,omitempty"`
	Name       string `json:"name,omitempty"`
}

type UpdateAdminPinRequest struct {
	CurrentPin string `json:"current_pin" binding:"required"`
	NewPin     string `json:"new_pin" binding:"required"`
}
