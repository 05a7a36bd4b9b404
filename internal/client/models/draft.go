package models

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnknownField is returned by Draft.SetField for a field name outside the
// record schema.
var ErrUnknownField = errors.New("unknown draft field")

// Draft is the mutable working copy of a record being created or edited.
//
// Numeric fields stay raw editable strings until Payload parses them; an
// empty or unparseable string becomes an absent value, never zero. RecordID
// is zero for a new record and the backing record's id while editing.
type Draft struct {
	RecordID int64

	WineName     string
	Vintage      string
	Varietal     string
	Region       string
	Producer     string
	Color        string
	Rating       string
	TastingDate  string
	Price        string
	Appearance   string
	Aroma        string
	Taste        string
	Finish       string
	FoodPairing  string
	Notes        string
	DrinkingWith string
	MealType     string

	Photos PhotoList
}

// NewDraft returns the field defaults for a brand-new record.
func NewDraft() Draft {
	return Draft{Color: string(ColorRed), Photos: PhotoList{}}
}

// DraftFromRecord copies every field of rec into an editable draft bound to
// rec's id. Absent optional values become empty strings, not nulls, and the
// photo sequence is carried over as-is.
func DraftFromRecord(rec TastingRecord) Draft {
	d := Draft{
		RecordID:     rec.ID,
		WineName:     rec.WineName,
		Vintage:      formatInt(rec.Vintage),
		Varietal:     rec.Varietal,
		Region:       rec.Region,
		Producer:     rec.Producer,
		Color:        string(rec.Color),
		Rating:       formatFloat(rec.Rating),
		TastingDate:  rec.TastingDate,
		Price:        formatFloat(rec.Price),
		Appearance:   rec.Appearance,
		Aroma:        rec.Aroma,
		Taste:        rec.Taste,
		Finish:       rec.Finish,
		FoodPairing:  rec.FoodPairing,
		Notes:        rec.Notes,
		DrinkingWith: rec.DrinkingWith,
		MealType:     rec.MealType,
		Photos:       rec.Photos,
	}
	if d.Color == "" {
		d.Color = string(ColorRed)
	}
	if d.Photos == nil {
		d.Photos = PhotoList{}
	}
	return d
}

// Editing reports whether the draft is bound to an existing server record.
func (d Draft) Editing() bool {
	return d.RecordID != 0
}

// SetField assigns value to the field with the given wire name. No
// validation happens here; that is the server's job at submission.
func (d *Draft) SetField(name, value string) error {
	switch name {
	case "wine_name":
		d.WineName = value
	case "vintage":
		d.Vintage = value
	case "varietal":
		d.Varietal = value
	case "region":
		d.Region = value
	case "producer":
		d.Producer = value
	case "color":
		d.Color = value
	case "rating":
		d.Rating = value
	case "tasting_date":
		d.TastingDate = value
	case "price":
		d.Price = value
	case "appearance":
		d.Appearance = value
	case "aroma":
		d.Aroma = value
	case "taste":
		d.Taste = value
	case "finish":
		d.Finish = value
	case "food_pairing":
		d.FoodPairing = value
	case "notes":
		d.Notes = value
	case "drinking_with":
		d.DrinkingWith = value
	case "meal_type":
		d.MealType = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Payload builds the record to submit. This is the single place where
// vintage, rating, and price cross from raw strings to numbers: empty or
// malformed input becomes null rather than an error.
func (d Draft) Payload() TastingRecord {
	return TastingRecord{
		ID:           d.RecordID,
		WineName:     d.WineName,
		Vintage:      parseInt(d.Vintage),
		Varietal:     d.Varietal,
		Region:       d.Region,
		Producer:     d.Producer,
		Color:        Color(d.Color),
		Rating:       parseFloat(d.Rating),
		TastingDate:  d.TastingDate,
		Price:        parseFloat(d.Price),
		Appearance:   d.Appearance,
		Aroma:        d.Aroma,
		Taste:        d.Taste,
		Finish:       d.Finish,
		FoodPairing:  d.FoodPairing,
		Notes:        d.Notes,
		DrinkingWith: d.DrinkingWith,
		MealType:     d.MealType,
		Photos:       d.Photos,
	}
}

func parseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
