package employee

type CreateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

type EmployeeResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	IsActive  bool   `json:"is_active"`
}
