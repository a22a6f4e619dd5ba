package handler

// --- Request types ---

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password"`
}

type adminUpdateRequest struct {
	ID       string `json:"id"       validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
}

type addUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

// --- Response types ---

// userResponse is the full account projection. The password hash has no
// field here at all.
type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// publicUserResponse is the narrow projection served to other users:
// no role, no timestamps.
type publicUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	User    *userResponse `json:"user,omitempty"`
	Token   string        `json:"token,omitempty"`
	Message string        `json:"message"`
}

type messageResponse struct {
	Message string        `json:"message"`
	User    *userResponse `json:"user,omitempty"`
}
