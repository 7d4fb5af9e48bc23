package model

// Deal is one promotional listing returned by the deals API, with optional
// wire fields already replaced by their documented defaults.
type Deal struct {
	Title       string
	Price       string
	DiscountPct float64
	Provider    string
	URL         string
}
