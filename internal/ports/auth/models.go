package auth

// Claims representa la identidad resuelta a partir de la cookie de sesión.
type Claims struct {
	Username  string
	SessionID string
}
