package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name   string
		data   RegisterData
		errors map[string]string
	}{
		{
			name: "valid single letter name",
			data: RegisterData{Name: "A", Email: "a@x.com", Password: "secret12", Password2: "secret12"},
		},
		{
			name: "everything missing",
			data: RegisterData{},
			errors: map[string]string{
				"name":      "Name field is required",
				"email":     "Email field is required",
				"password":  "Password field is required",
				"password2": "Confirm Password field is required",
			},
		},
		{
			name: "bad email and short password",
			data: RegisterData{Name: "Ann", Email: "not-an-email", Password: "123", Password2: "123"},
			errors: map[string]string{
				"email":    "Email is invalid",
				"password": "Password must be at least 6 characters",
			},
		},
		{
			name:   "passwords differ",
			data:   RegisterData{Name: "Ann", Email: "ann@x.com", Password: "secret12", Password2: "secret13"},
			errors: map[string]string{"password2": "Passwords must match"},
		},
		{
			name:   "name too long",
			data:   RegisterData{Name: strings.Repeat("n", 31), Email: "ann@x.com", Password: "secret12", Password2: "secret12"},
			errors: map[string]string{"name": "Name must be at most 30 characters"},
		},
		{
			name:   "blank name",
			data:   RegisterData{Name: "   ", Email: "ann@x.com", Password: "secret12", Password2: "secret12"},
			errors: map[string]string{"name": "Name field is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateRegister(tt.data)
			if tt.errors == nil {
				assert.True(t, res.IsValid(), "unexpected errors: %v", res.Errors)
				return
			}
			assert.False(t, res.IsValid())
			assert.Equal(t, tt.errors, res.Errors)
		})
	}
}

func TestValidateLogin(t *testing.T) {
	assert.True(t, ValidateLogin(LoginData{Email: "a@x.com", Password: "x"}).IsValid())

	res := ValidateLogin(LoginData{Email: "nope"})
	assert.Equal(t, map[string]string{
		"email":    "Email is invalid",
		"password": "Password field is required",
	}, res.Errors)
}

func TestValidatePost(t *testing.T) {
	assert.True(t, ValidatePost(PostData{Text: "hello world"}).IsValid())

	assert.Equal(t, "Text field is required", ValidatePost(PostData{}).Errors["text"])
	assert.Equal(t, "Post must be between 10 and 300 characters", ValidatePost(PostData{Text: "short"}).Errors["text"])
	assert.Equal(t, "Post must be between 10 and 300 characters", ValidatePost(PostData{Text: strings.Repeat("x", 301)}).Errors["text"])
}

func TestValidateProfile(t *testing.T) {
	valid := ProfileData{
		Handle:  "jdoe",
		Status:  "Developer",
		Skills:  []string{"go"},
		Website: "jdoe.dev",
		Twitter: "https://twitter.com/jdoe",
	}
	res := ValidateProfile(valid)
	assert.True(t, res.IsValid(), "unexpected errors: %v", res.Errors)

	res = ValidateProfile(ProfileData{Handle: "j", Website: "not a url"})
	assert.Equal(t, map[string]string{
		"handle":  "Handle needs to be between 2 and 40 characters",
		"status":  "Status field is required",
		"skills":  "Skills field is required",
		"website": "Not a valid URL",
	}, res.Errors)

	res = ValidateProfile(ProfileData{Status: "x", Skills: []string{"go"}, Youtube: "ftp://files.example.com"})
	assert.Equal(t, "Profile handle is required", res.Errors["handle"])
	assert.Equal(t, "Not a valid URL", res.Errors["youtube"])
}

func TestValidateExperienceAndEducation(t *testing.T) {
	exp := ValidateExperience(ExperienceData{Title: "Dev", Company: "Acme", From: "2020-01-02"})
	assert.True(t, exp.IsValid(), "unexpected errors: %v", exp.Errors)

	exp = ValidateExperience(ExperienceData{To: "yesterday"})
	assert.Equal(t, map[string]string{
		"title":   "Job title field is required",
		"company": "Company field is required",
		"from":    "From date field is required",
		"to":      "Not a valid date",
	}, exp.Errors)

	edu := ValidateEducation(EducationData{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2016-09-01T00:00:00Z"})
	assert.True(t, edu.IsValid(), "unexpected errors: %v", edu.Errors)

	edu = ValidateEducation(EducationData{From: "09/01/2016"})
	assert.Equal(t, map[string]string{
		"school":       "School field is required",
		"degree":       "Degree field is required",
		"fieldofstudy": "Field of study field is required",
		"from":         "Not a valid date",
	}, edu.Errors)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2021-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2021-03-04T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = ParseDate("March 4")
	assert.Error(t, err)
}
