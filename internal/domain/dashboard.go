package domain

type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

func (c *StatusCounts) Add(s Status) {
	switch s {
	case StatusPending:
		c.Pending++
	case StatusApproved:
		c.Approved++
	case StatusRejected:
		c.Rejected++
	}
}

// Dashboard is everything the moderation view shows.
type Dashboard struct {
	Locations      []*Location
	Links          []*Link
	LocationCounts StatusCounts
	LinkCounts     StatusCounts
}

// ClientMeta carries request facts the submission pipeline needs.
type ClientMeta struct {
	RemoteIP string
}
