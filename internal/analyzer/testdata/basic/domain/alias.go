package domain

import view "github.com/origadmin/mapgen/internal/analyzer/testdata/basic/dto"

//go:mapgen:mappable=view.PersonDto
type Profile struct {
	Name  string `json:"name" mapped:"FullName,omitempty"`
	Label view.Label
}
