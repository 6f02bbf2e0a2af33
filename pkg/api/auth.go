package api

// User is the public view of an account.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile,omitempty"`
	Role      string `json:"role"`
	Active    bool   `json:"isActive"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginMobileRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// AuthResponse is returned by every successful signup or login.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type CheckMobileRequest struct {
	Mobile string `json:"mobile"`
}

type CheckMobileResponse struct {
	Exists bool `json:"exists"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}
