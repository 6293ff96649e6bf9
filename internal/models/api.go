package models

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// AuthResponse is the body of the login and signup endpoints.
// On failure only Success and Message are set.
type AuthResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is the body of the contact endpoint and of every
// generic failure.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
