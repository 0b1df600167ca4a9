package domain

//go:mapgen:mappable with="github.com/origadmin/mapgen/internal/analyzer/testdata/basic/dto.OrderView"
type Receipt struct{}
