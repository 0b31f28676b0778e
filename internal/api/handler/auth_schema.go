package handler

type loginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type registerRequest struct {
	Username        string `form:"username"         validate:"required,min=3,max=80"`
	Password        string `form:"password"         validate:"required,min=6,max=120"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// pageResponse is the view model for the unauthenticated login/register page
// shells. The error field echoes the notice carried back on a redirect.
type pageResponse struct {
	Page  string `json:"page"`
	Error string `json:"error,omitempty"`
}
