package dto

type PersonDto struct {
	FullName string
	Age      int
}

type OrderView struct {
	Amount float64
}

type Label string
