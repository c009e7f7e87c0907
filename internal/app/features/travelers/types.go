// internal/app/features/travelers/types.go
package travelers

// registerRequest is the payload for POST /api/cadastro.
type registerRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// loginRequest is the payload for POST /api/login.
type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}
