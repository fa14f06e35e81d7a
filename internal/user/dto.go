package user

type RegisterRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	FullName      string `json:"full_name" validate:"required"`
	Qualification string `json:"qualification" validate:"required"`
	DOB           string `json:"dob" validate:"required"`
}

// LoginRequest.Email also accepts an admin username.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	Message     string `json:"message"`
}

type UpdateProfileRequest struct {
	FullName      *string `json:"full_name"`
	Qualification *string `json:"qualification"`
	DOB           *string `json:"dob"`
}

type UserResponse struct {
	ID            uint   `json:"id"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	Qualification string `json:"qualification"`
	DOB           string `json:"dob"`
	Role          string `json:"role"`
}

type BootstrapAdmin struct {
	Username string
	Email    string
	Password string
}
