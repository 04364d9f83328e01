package dto

type RegisterDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,strongpwd"`
}

type LoginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type LogoutDTO struct {
	UserID       string `json:"userId"       validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type VerifyDTO struct {
	AccessToken string `json:"accessToken" validate:"required"`
}
