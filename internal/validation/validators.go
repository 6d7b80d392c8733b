package validation

import (
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayouts are the accepted formats for from/to dates.
var DateLayouts = []string{"2006-01-02", time.RFC3339}

func registerValidators(v *validator.Validate) {
	_ = v.RegisterValidation("weburl", WebURL)
	_ = v.RegisterValidation("isodate", ISODate)
	_ = v.RegisterValidation("notblank", NotBlank)
}

// WebURL accepts absolute http(s) URLs and bare host paths such as
// "github.com/jdoe". Empty values pass; combine with required if needed.
func WebURL(fl validator.FieldLevel) bool {
	val := strings.TrimSpace(fl.Field().String())
	if val == "" {
		return true
	}
	if !strings.Contains(val, "://") {
		val = "http://" + val
	}
	u, err := url.Parse(val)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	return strings.Contains(host, ".") && !strings.ContainsAny(host, " _")
}

// ISODate accepts dates in any of DateLayouts. Empty values pass.
func ISODate(fl validator.FieldLevel) bool {
	val := strings.TrimSpace(fl.Field().String())
	if val == "" {
		return true
	}
	_, err := ParseDate(val)
	return err == nil
}

// NotBlank rejects strings made only of whitespace.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ParseDate parses s using the first matching layout in DateLayouts.
func ParseDate(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range DateLayouts {
		t, err := time.Parse(layout, strings.TrimSpace(s))
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
