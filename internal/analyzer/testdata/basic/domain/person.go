package domain

import "github.com/origadmin/mapgen/internal/analyzer/testdata/basic/dto"

//go:mapgen:mappable with=dto.PersonDto
type Person struct {
	Name string `mapped:"FullName"`
	Age  int    `mapped:""`
	note string
}

//go:mapgen:mappable with=dto.Missing
type Ghost struct{}

//go:mapgen:mappable with=dto.Label
type Badge struct{}

//go:mapgen:mappable with=dto.PersonDto
type Code int

var _ = dto.Label("")
