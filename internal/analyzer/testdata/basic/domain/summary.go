package domain

import _ "github.com/origadmin/mapgen/internal/analyzer/testdata/basic/views"

// Summary maps onto a package whose name differs from its directory.
//
//go:mapgen:mappable with=presentation.SummaryView
type Summary struct {
	Title string `mapped:"Heading"`
	draft bool   `mapped:"Draft"`
}
