package domain

// RoleUser is granted to every authenticated customer.
const RoleUser = "ROLE_USER"

// Role is a named security role.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomerRole links a customer to a granted role.
type CustomerRole struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	RoleID     string `json:"role_id"`
	RoleName   string `json:"role_name"`
}
