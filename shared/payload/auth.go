package payload

type SignInRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SignInResponse struct {
	Message string `json:"message"`
}

type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required"`
}

type VerifyResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
