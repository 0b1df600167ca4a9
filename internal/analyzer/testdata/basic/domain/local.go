package domain

// Entity maps onto a type of its own package.
//
//go:mapgen:mappable with=Shadow
type Entity struct {
	ID int `mapped:"Key"`
}

type Shadow struct {
	Key int
}

//go:mapgen:mappable with=Shadow
type shadowCopy struct {
	Key int `mapped:""`
}
