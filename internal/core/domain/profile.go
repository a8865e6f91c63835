package domain

import (
	"time"
	"unicode/utf8"
)

const (
	MaxStageNameLen = 50
	MaxClubNameLen  = 100
	MaxBioLen       = 1000
	MaxContactLen   = 200
	MaxPhotos       = 5
)

// Location is where a performer is based.
type Location struct {
	Province string `json:"province" bson:"province"`
	City     string `json:"city" bson:"city"`
}

// Profile is a performer's public card. There is at most one per account.
type Profile struct {
	ID         string   `json:"id"`
	UserID     string   `json:"userId"`
	StageName  string   `json:"stageName"`
	Experience int      `json:"experience"`
	Location   Location `json:"location"`
	HasClub    bool     `json:"hasClub"`
	ClubName   string   `json:"clubName,omitempty"`
	Bio        string   `json:"bio"`
	Contact    string   `json:"contact"`

	HasCommercialExp    bool     `json:"hasCommercialExp"`
	HasScriptwritingExp bool     `json:"hasScriptwritingExp"`
	HasPersonalShow     bool     `json:"hasPersonalShow"`
	PersonalShows       []string `json:"personalShows,omitempty"`
	HasVarietyExp       bool     `json:"hasVarietyExp"`
	VarietyShows        []string `json:"varietyShows,omitempty"`

	IsPriceNegotiable bool     `json:"isPriceNegotiable"`
	CommercialFee     *float64 `json:"commercialFee,omitempty"`
	JointShowFee      *float64 `json:"jointShowFee,omitempty"`
	PersonalShowFee   *float64 `json:"personalShowFee,omitempty"`
	ScriptwritingFee  *float64 `json:"scriptwritingFee,omitempty"`

	Avatar string   `json:"avatar,omitempty"`
	Photos []string `json:"photos"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Fees returns the four fee fields keyed by their wire names.
func (p *Profile) Fees() map[string]*float64 {
	return map[string]*float64{
		"commercialFee":    p.CommercialFee,
		"jointShowFee":     p.JointShowFee,
		"personalShowFee":  p.PersonalShowFee,
		"scriptwritingFee": p.ScriptwritingFee,
	}
}

// ClearFees drops every fee; negotiable profiles carry none.
func (p *Profile) ClearFees() {
	p.CommercialFee = nil
	p.JointShowFee = nil
	p.PersonalShowFee = nil
	p.ScriptwritingFee = nil
}

// Validate checks the stored-record invariants. Lengths count characters,
// not bytes.
func (p *Profile) Validate() error {
	switch n := utf8.RuneCountInString(p.StageName); {
	case n == 0:
		return Validation("stageName is required")
	case n > MaxStageNameLen:
		return Validation("stageName must be at most %d characters", MaxStageNameLen)
	}
	if p.Experience < 0 {
		return Validation("experience must not be negative")
	}
	if utf8.RuneCountInString(p.ClubName) > MaxClubNameLen {
		return Validation("clubName must be at most %d characters", MaxClubNameLen)
	}
	if utf8.RuneCountInString(p.Bio) > MaxBioLen {
		return Validation("bio must be at most %d characters", MaxBioLen)
	}
	if utf8.RuneCountInString(p.Contact) > MaxContactLen {
		return Validation("contact must be at most %d characters", MaxContactLen)
	}
	if len(p.Photos) > MaxPhotos {
		return Validation("photos must contain at most %d items", MaxPhotos)
	}
	if !p.IsPriceNegotiable {
		for name, fee := range p.Fees() {
			if fee != nil && *fee < 0 {
				return Validation("%s must not be negative", name)
			}
		}
	}
	return nil
}

// ComedianSummary is the public directory projection of a Profile.
type ComedianSummary struct {
	ID                  string   `json:"id"`
	Avatar              string   `json:"avatar,omitempty"`
	StageName           string   `json:"stageName"`
	Experience          int      `json:"experience"`
	Location            Location `json:"location"`
	HasCommercialExp    bool     `json:"hasCommercialExp"`
	HasScriptwritingExp bool     `json:"hasScriptwritingExp"`
	HasPersonalShow     bool     `json:"hasPersonalShow"`
	HasVarietyExp       bool     `json:"hasVarietyExp"`
}

// SaveOutcome tells whether an upsert created or replaced the profile.
type SaveOutcome string

const (
	OutcomeCreated SaveOutcome = "created"
	OutcomeUpdated SaveOutcome = "updated"
)
