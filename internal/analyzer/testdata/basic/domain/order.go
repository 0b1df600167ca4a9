package domain

import _ "github.com/origadmin/mapgen/internal/analyzer/testdata/basic/dto"

type (
	//go:mapgen:mappable with=dto.OrderView
	Order struct {
		Total float64 `mapped:"Amount"`
	}
)
