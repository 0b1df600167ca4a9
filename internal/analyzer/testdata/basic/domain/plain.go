package domain

type Plain struct {
	Value string `mapped:"Other"`
}

type Wrapper struct {
	Person `mapped:"Inner"`
}
