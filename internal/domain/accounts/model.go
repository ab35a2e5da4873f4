package accounts

// Account es la cuenta de un usuario. Username es la identidad: único,
// case-sensitive e inmutable. Las cuentas nunca se borran.
type Account struct {
	ID           string
	Username     string
	PasswordHash string

	// Perfil opcional (nil = no cargado).
	Name    *string
	Bio     *string
	Picture *string
}

// Profile son los campos opcionales que se pueden pasar al crear la cuenta.
type Profile struct {
	Name    string
	Bio     string
	Picture string
}
