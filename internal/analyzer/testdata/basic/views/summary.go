package presentation

type SummaryView struct {
	Heading string
	Draft   bool
}
