package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the plain acknowledgement shape used by mutating endpoints.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Account requests / responses ---

type signupRequest struct {
	Username     string `json:"username"      validate:"required,max=150"`
	Email        string `json:"email"         validate:"required,email,max=150"`
	Password     string `json:"password"      validate:"required,max=150"`
	ReferralCode string `json:"referral_code"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Role     string `json:"role"`
	Approved bool   `json:"approved"`
	Username string `json:"username"`
	// Token lets non-browser clients authenticate with Authorization: Bearer
	// instead of the session cookie.
	Token string `json:"token,omitempty"`
}

type currentUserResponse struct {
	Role     string `json:"role"`
	Approved bool   `json:"approved"`
	Username string `json:"username"`
}

type referralResponse struct {
	ReferralCode string `json:"referral_code"`
	ReferralLink string `json:"referral_link"`
}

type userSummaryResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Approved bool   `json:"approved"`
}

// --- Catalog requests / responses ---

type addProductRequest struct {
	Name        string  `json:"name"        validate:"required,max=150"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Type        string  `json:"type"        validate:"required"`
	DemoURL     string  `json:"demo_url"    validate:"omitempty,url,max=200"`
}

type productResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Type        string  `json:"type"`
	DemoURL     string  `json:"demo_url,omitempty"`
}
