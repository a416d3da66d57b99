package userdto

type RegisterInput struct {
	FullName string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required,min=8,max=15"`
	Password string `validate:"required,min=8,max=72"`
	Role     string `validate:"required,oneof=parent tutor"`
}

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}
