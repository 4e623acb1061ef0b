package validation

import (
	"net/url"
	"regexp"
	"strings"

	"mapdex/internal/models"
)

// Field length bounds enforced before a payload reaches the network layer.
const (
	MaxTitleLength       = 250
	MaxDescriptionLength = 4000
)

// EmailPattern is a pragmatic email shape check, not full RFC 5322.
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// TelephonePattern allows digits, spaces, and common phone punctuation.
var TelephonePattern = regexp.MustCompile(`^\+?[0-9 ()/.-]{3,32}$`)

// ValidateTitle checks the required title field.
func ValidateTitle(title string) (bool, string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return false, "title is required"
	}
	if len(title) > MaxTitleLength {
		return false, "title is too long"
	}
	return true, ""
}

// ValidateDescription checks the required description field.
func ValidateDescription(desc string) (bool, string) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return false, "description is required"
	}
	if len(desc) > MaxDescriptionLength {
		return false, "description is too long"
	}
	return true, ""
}

// ValidateEmail checks an optional email field.
func ValidateEmail(email string) bool {
	return email == "" || EmailPattern.MatchString(email)
}

// ValidateTelephone checks an optional telephone field.
func ValidateTelephone(tel string) bool {
	return tel == "" || TelephonePattern.MatchString(tel)
}

// ValidateHomepage checks an optional homepage URL: http/https with a host.
func ValidateHomepage(homepage string) bool {
	if homepage == "" {
		return true
	}
	u, err := url.Parse(homepage)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// ValidateLicense checks a creation license selection against the accepted
// licenses.
func ValidateLicense(license string) bool {
	return license == models.LicenseCC0 || license == models.LicenseODbL
}

// ValidateCategory checks an entry category.
func ValidateCategory(category string) bool {
	return category == models.CategoryInitiative || category == models.CategoryCompany
}

// ValidateEntryPayload runs the synchronous form-level checks on a raw entry
// payload. Failures are resolved locally and never reach the network layer.
// isEdit relaxes the license requirement (edits carry a version instead).
func ValidateEntryPayload(form map[string]any, isEdit bool) (bool, string) {
	title, _ := form["title"].(string)
	if ok, msg := ValidateTitle(title); !ok {
		return false, msg
	}

	desc, _ := form["description"].(string)
	if ok, msg := ValidateDescription(desc); !ok {
		return false, msg
	}

	if email, _ := form["email"].(string); !ValidateEmail(email) {
		return false, "email address is not valid"
	}

	if tel, _ := form["telephone"].(string); !ValidateTelephone(tel) {
		return false, "telephone number is not valid"
	}

	if homepage, _ := form["homepage"].(string); !ValidateHomepage(homepage) {
		return false, "homepage must be an http or https URL"
	}

	cats := categoryList(form)
	if len(cats) != 1 {
		return false, "exactly one category is required"
	}
	if !ValidateCategory(cats[0]) {
		return false, "unknown category"
	}

	if !isEdit && !validLicenseSelection(form["license"]) {
		return false, "a license selection is required"
	}

	return true, ""
}

// validLicenseSelection accepts the checkbox-group array shape the form
// widget produces, or an already collapsed scalar.
func validLicenseSelection(v any) bool {
	switch l := v.(type) {
	case string:
		return ValidateLicense(l)
	case []string:
		return len(l) > 0 && ValidateLicense(l[0])
	case []any:
		if len(l) == 0 {
			return false
		}
		s, ok := l[0].(string)
		return ok && ValidateLicense(s)
	}
	return false
}

func categoryList(form map[string]any) []string {
	switch v := form["categories"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}
