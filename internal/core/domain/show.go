package domain

import "time"

// ShowType is the nature of a posted booking opportunity.
type ShowType string

const (
	ShowCommercial    ShowType = "commercial"
	ShowBusiness      ShowType = "business"
	ShowVariety       ShowType = "variety"
	ShowFilm          ShowType = "film"
	ShowScriptwriting ShowType = "scriptwriting"
	ShowOther         ShowType = "other"
)

// Valid reports whether t is one of the known show types.
func (t ShowType) Valid() bool {
	switch t {
	case ShowCommercial, ShowBusiness, ShowVariety, ShowFilm, ShowScriptwriting, ShowOther:
		return true
	}
	return false
}

// Show is an organizer's posting. Price is set if and only if the price is
// fixed.
type Show struct {
	ID                string    `json:"id"`
	OwnerID           string    `json:"userId"`
	Title             string    `json:"title"`
	Type              ShowType  `json:"type"`
	Location          string    `json:"location"`
	IsPriceNegotiable bool      `json:"isPriceNegotiable"`
	Price             *float64  `json:"price,omitempty"`
	Description       string    `json:"description"`
	Deadline          time.Time `json:"deadline"`
	Contact           string    `json:"contact"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Owner is the account summary attached to shows on read. It is never stored
// on the show document.
type Owner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// ShowView is a Show plus its owner, as returned by the read endpoints.
type ShowView struct {
	Show
	Owner Owner `json:"owner"`
}
