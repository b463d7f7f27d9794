package domain

// Option is a closed-list entry with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

const (
	MaxLocationListEntries = 16
	MaxLinkListEntries     = 12
)

// LocationTypes, Statuses, LinkProducts and TagOptions are the only allowed
// values for their fields. Validation and the moderation view both read them
// from here.
var (
	LocationTypes = []Option{
		{Value: string(LocationFarm), Label: "Farm"},
		{Value: string(LocationHome), Label: "Home"},
		{Value: string(LocationStore), Label: "Store"},
		{Value: string(LocationDropoff), Label: "Drop Off"},
		{Value: string(LocationOther), Label: "Other"},
	}

	Statuses = []Option{
		{Value: string(StatusPending), Label: "Pending"},
		{Value: string(StatusApproved), Label: "Approved"},
		{Value: string(StatusRejected), Label: "Rejected"},
	}

	LinkProducts = []string{"Water", "Honey", "Clay", "Other"}

	TagOptions = []string{
		"Raw",
		"Unheated",
		"Unfiltered",
		"Organic",
		"No Spray",
		"Pasture-Raised",
		"Grass-Fed",
		"Regenerative",
	}

	// FoodOptions are suggestions for the submit form; location foods stay free-form.
	FoodOptions = []string{
		"Milk",
		"Eggs",
		"Beef",
		"Chicken",
		"Pork",
		"Lamb",
		"Vegetables",
		"Fruit",
		"Honey",
		"Butter",
		"Cheese",
	}
)

var (
	locationTypeSet = optionSet(LocationTypes)
	statusSet       = optionSet(Statuses)
	linkProductSet  = stringSet(LinkProducts)
	tagOptionSet    = stringSet(TagOptions)
)

func optionSet(options []Option) map[string]struct{} {
	set := make(map[string]struct{}, len(options))
	for _, o := range options {
		set[o.Value] = struct{}{}
	}
	return set
}

func stringSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func IsLocationType(v string) bool {
	_, ok := locationTypeSet[v]
	return ok
}

func IsStatus(v string) bool {
	_, ok := statusSet[v]
	return ok
}

func IsLinkProduct(v string) bool {
	_, ok := linkProductSet[v]
	return ok
}

func IsTagOption(v string) bool {
	_, ok := tagOptionSet[v]
	return ok
}

// Label returns the display label for value, or value itself when unknown.
func Label(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
