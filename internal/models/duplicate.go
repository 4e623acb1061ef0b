package models

// DuplicatePayload is the reduced projection of an entry sent to the
// duplicate-check endpoint. The id is nil for the submitted entry and set on
// returned candidates.
type DuplicatePayload struct {
	ID          *string `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Street      string  `json:"street,omitempty"`
	Zip         string  `json:"zip,omitempty"`
	City        string  `json:"city,omitempty"`
	Country     string  `json:"country,omitempty"`
	State       string  `json:"state,omitempty"`
	Contact     string  `json:"contact,omitempty"`
	Telephone   string  `json:"telephone,omitempty"`
	Email       string  `json:"email,omitempty"`
	Homepage    string  `json:"homepage,omitempty"`
}

// DuplicateCandidate returns the duplicate projection of an entry with its
// id set, as returned by the duplicate-check endpoint.
func (e *Entry) DuplicateCandidate() DuplicatePayload {
	id := e.ID
	return DuplicatePayload{
		ID:          &id,
		Title:       e.Title,
		Description: e.Description,
		Lat:         e.Lat,
		Lng:         e.Lng,
		Street:      e.Street,
		Zip:         e.Zip,
		City:        e.City,
		Country:     e.Country,
		State:       e.State,
		Contact:     e.Contact,
		Telephone:   e.Telephone,
		Email:       e.Email,
		Homepage:    e.Homepage,
	}
}

// DuplicateProjection builds the duplicate-check payload from a raw form
// payload. Only identity, location and contact fields are carried; id is nil.
func DuplicateProjection(form map[string]any) DuplicatePayload {
	return DuplicatePayload{
		Title:       formString(form, "title"),
		Description: formString(form, "description"),
		Lat:         formFloat(form, "lat"),
		Lng:         formFloat(form, "lng"),
		Street:      formString(form, "street"),
		Zip:         formString(form, "zip"),
		City:        formString(form, "city"),
		Country:     formString(form, "country"),
		State:       formString(form, "state"),
		Contact:     formString(form, "contact"),
		Telephone:   formString(form, "telephone"),
		Email:       formString(form, "email"),
		Homepage:    formString(form, "homepage"),
	}
}

func formString(form map[string]any, key string) string {
	s, _ := form[key].(string)
	return s
}

func formFloat(form map[string]any, key string) float64 {
	switch v := form[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}
