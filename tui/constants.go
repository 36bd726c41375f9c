package tui

const (
	tableVerticalPadding = 4
	splitPanelPadding    = 2
	minURLColumnWidth    = 20
	maxURLColumnWidth    = 100
	maxURLDisplayLength  = 50
	borderPadding        = 8

	methodColumnWidth     = 8
	statusColumnWidth     = 10
	violationsColumnWidth = 10
	durationColumnWidth   = 10

	// inspector panel share of the vertical space when split
	panelHeightRatio = 0.6
	minPanelHeight   = 6
)
