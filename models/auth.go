package models

// LoginRequest, POST /api/login body'si.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse, başarılı login yanıtı.
type LoginResponse struct {
	Token string `json:"token"`
}
