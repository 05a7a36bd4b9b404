// Package models defines the tasting record types exchanged with the server
// and the client-side draft used while a record is being edited.
package models

import "encoding/json"

// Color is the wine color enum the server stores as a plain string.
type Color string

const (
	ColorRed       Color = "Red"
	ColorWhite     Color = "White"
	ColorRose      Color = "Rosé"
	ColorSparkling Color = "Sparkling"
)

// PhotoList is the normalized photo filename sequence of a record.
//
// Depending on the server's storage backend, the wire value is either a
// native JSON array or a JSON-encoded string containing one. UnmarshalJSON
// accepts both so every consumer past the decode boundary sees a plain
// []string. Malformed or absent input normalizes to an empty list; decoding
// never fails.
type PhotoList []string

func (p *PhotoList) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		if names == nil {
			names = []string{}
		}
		*p = names
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil && encoded != "" {
		if err := json.Unmarshal([]byte(encoded), &names); err == nil && names != nil {
			*p = names
			return nil
		}
	}

	*p = PhotoList{}
	return nil
}

// MarshalJSON always emits a native array, never the string form.
func (p PhotoList) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(p))
}

// Remove returns a copy of the list with every occurrence of name filtered out.
func (p PhotoList) Remove(name string) PhotoList {
	out := make(PhotoList, 0, len(p))
	for _, n := range p {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

// TastingRecord is a single wine tasting entry as the server confirms it.
// Optional numeric fields are pointers so they round-trip as JSON numbers or
// null, never as strings.
type TastingRecord struct {
	ID           int64     `json:"id,omitempty"`
	WineName     string    `json:"wine_name"`
	Vintage      *int      `json:"vintage"`
	Varietal     string    `json:"varietal"`
	Region       string    `json:"region"`
	Producer     string    `json:"producer"`
	Color        Color     `json:"color"`
	Rating       *float64  `json:"rating"`
	TastingDate  string    `json:"tasting_date"`
	Price        *float64  `json:"price"`
	Appearance   string    `json:"appearance"`
	Aroma        string    `json:"aroma"`
	Taste        string    `json:"taste"`
	Finish       string    `json:"finish"`
	FoodPairing  string    `json:"food_pairing"`
	Notes        string    `json:"notes"`
	DrinkingWith string    `json:"drinking_with"`
	MealType     string    `json:"meal_type"`
	Photos       PhotoList `json:"photos"`
	CreatedAt    string    `json:"created_at,omitempty"`
}
