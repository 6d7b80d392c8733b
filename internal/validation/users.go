package validation

// RegisterData is the registration form.
type RegisterData struct {
	Name      string `json:"name" validate:"notblank,max=30"`
	Email     string `json:"email" validate:"notblank,email"`
	Password  string `json:"password" validate:"notblank,min=6,max=30"`
	Password2 string `json:"password2" validate:"notblank,eqfield=Password"`
}

var registerMessages = map[string]string{
	"name.notblank":      "Name field is required",
	"name":               "Name must be at most 30 characters",
	"email.notblank":     "Email field is required",
	"email":              "Email is invalid",
	"password.notblank":  "Password field is required",
	"password":           "Password must be at least 6 characters",
	"password2.notblank": "Confirm Password field is required",
	"password2":          "Passwords must match",
}

// ValidateRegister checks a registration form.
func ValidateRegister(d RegisterData) Result {
	return check(d, registerMessages)
}

// LoginData is the login form.
type LoginData struct {
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"notblank"`
}

var loginMessages = map[string]string{
	"email.notblank": "Email field is required",
	"email":          "Email is invalid",
	"password":       "Password field is required",
}

// ValidateLogin checks a login form.
func ValidateLogin(d LoginData) Result {
	return check(d, loginMessages)
}
