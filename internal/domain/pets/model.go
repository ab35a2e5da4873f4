package pets

import "time"

// Pet es un animal publicado para adopción.
//
// PriorOwners es la cadena cronológica de dueños anteriores (append-only); el
// dueño actual nunca aparece en ella. Solo TransferOwnership muta un Pet.
type Pet struct {
	ID            string
	OwnerUsername string

	Name        string
	Species     string // dog, cat, ... (texto libre)
	Age         int
	Zipcode     string // 5 dígitos
	Description string
	Tag         string
	ImageRef    string

	PriorOwners []string

	CreatedAt time.Time
}

// Filter: cada campo no vacío tiene que coincidir exacto. Filter{} = todas.
type Filter struct {
	Name    string
	Species string
	Age     *int
	Zipcode string
	Tag     string
}

func (f Filter) IsZero() bool {
	return f.Name == "" && f.Species == "" && f.Age == nil && f.Zipcode == "" && f.Tag == ""
}

// Matches se usa en el adapter in-memory; Mongo traduce el mismo Filter a bson.
func (f Filter) Matches(p Pet) bool {
	if f.Name != "" && p.Name != f.Name {
		return false
	}
	if f.Species != "" && p.Species != f.Species {
		return false
	}
	if f.Age != nil && p.Age != *f.Age {
		return false
	}
	if f.Zipcode != "" && p.Zipcode != f.Zipcode {
		return false
	}
	if f.Tag != "" && p.Tag != f.Tag {
		return false
	}
	return true
}
