package dto

type RegisterRequest struct {
	Passphrase string `json:"passphrase" validate:"required"`
}

type RegisterResponse struct {
	UserId string `json:"user_id"`
	Token  string `json:"token"`
}

type GeneratePassphraseResponse struct {
	Passphrase string `json:"passphrase"`
}
