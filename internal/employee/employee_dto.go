package employee

type CreateEmployeeRequest struct {
	FullName   string  `json:"full_name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Role       string  `json:"role" binding:"required,oneof=employee manager hr admin"`
	Department string  `json:"department"`
	ManagerID  *string `json:"manager_id" binding:"omitempty,uuid"`
}

type UpdateEmployeeRequest struct {
	FullName   string  `json:"full_name" binding:"required"`
	Role       string  `json:"role" binding:"required,oneof=employee manager hr admin"`
	Department string  `json:"department"`
	ManagerID  *string `json:"manager_id" binding:"omitempty,uuid"`
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Department string  `json:"department"`
	ManagerID  *string `json:"manager_id,omitempty"`
}
