package validation

import (
	"strings"
	"testing"

	"mapdex/internal/models"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"valid", "Repair Cafe", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"at max length", strings.Repeat("a", MaxTitleLength), true},
		{"over max length", strings.Repeat("a", MaxTitleLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ok, _ := ValidateTitle(tt.title); ok != tt.want {
				t.Errorf("ValidateTitle(%q) = %v, want %v", tt.title, ok, tt.want)
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	if ok, _ := ValidateDescription(""); ok {
		t.Error("empty description accepted")
	}
	if ok, _ := ValidateDescription(strings.Repeat("a", MaxDescriptionLength+1)); ok {
		t.Error("over-long description accepted")
	}
	if ok, _ := ValidateDescription("A community repair meetup."); !ok {
		t.Error("valid description rejected")
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"", true},
		{"hello@example.org", true},
		{"first.last@sub.example.org", true},
		{"not-an-email", false},
		{"missing@tld", false},
		{"two@@example.org", false},
	}

	for _, tt := range tests {
		if got := ValidateEmail(tt.email); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidateTelephone(t *testing.T) {
	tests := []struct {
		tel  string
		want bool
	}{
		{"", true},
		{"+49 89 1234567", true},
		{"(089) 123-45-67", true},
		{"12", false},
		{"call me maybe", false},
	}

	for _, tt := range tests {
		if got := ValidateTelephone(tt.tel); got != tt.want {
			t.Errorf("ValidateTelephone(%q) = %v, want %v", tt.tel, got, tt.want)
		}
	}
}

func TestValidateHomepage(t *testing.T) {
	tests := []struct {
		homepage string
		want     bool
	}{
		{"", true},
		{"https://example.org", true},
		{"http://example.org/path", true},
		{"ftp://example.org", false},
		{"example.org", false},
		{"https://", false},
	}

	for _, tt := range tests {
		if got := ValidateHomepage(tt.homepage); got != tt.want {
			t.Errorf("ValidateHomepage(%q) = %v, want %v", tt.homepage, got, tt.want)
		}
	}
}

func validForm() map[string]any {
	return map[string]any{
		"title":       "Repair Cafe",
		"description": "A community repair meetup.",
		"categories":  []any{models.CategoryInitiative},
		"license":     []any{models.LicenseCC0},
	}
}

func TestValidateEntryPayload(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
		isEdit bool
		want   bool
	}{
		{"valid create", func(f map[string]any) {}, false, true},
		{"missing title", func(f map[string]any) { f["title"] = "" }, false, false},
		{"missing description", func(f map[string]any) { delete(f, "description") }, false, false},
		{"bad email", func(f map[string]any) { f["email"] = "nope" }, false, false},
		{"bad homepage", func(f map[string]any) { f["homepage"] = "gopher://x" }, false, false},
		{"no category", func(f map[string]any) { f["categories"] = []any{} }, false, false},
		{"two categories", func(f map[string]any) {
			f["categories"] = []any{models.CategoryInitiative, models.CategoryCompany}
		}, false, false},
		{"unknown category", func(f map[string]any) { f["categories"] = []any{"event"} }, false, false},
		{"scalar category accepted", func(f map[string]any) { f["categories"] = models.CategoryCompany }, false, true},
		{"missing license on create", func(f map[string]any) { delete(f, "license") }, false, false},
		{"empty license array on create", func(f map[string]any) { f["license"] = []any{} }, false, false},
		{"unknown license", func(f map[string]any) { f["license"] = "WTFPL" }, false, false},
		{"scalar license accepted", func(f map[string]any) { f["license"] = models.LicenseODbL }, false, true},
		{"missing license ok on edit", func(f map[string]any) { delete(f, "license") }, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(form)
			ok, msg := ValidateEntryPayload(form, tt.isEdit)
			if ok != tt.want {
				t.Errorf("ValidateEntryPayload() = %v (%q), want %v", ok, msg, tt.want)
			}
			if !ok && msg == "" {
				t.Error("rejection without a message")
			}
		})
	}
}
