package catalog

// Catalog UI locators. Keep in sync with the catalog front end.
var (
	TitleLocator = Locator{
		Name:  "title",
		Query: `.screen-title-circ-title`,
	}
	GoToShelfLocator = Locator{
		Name:  "go to shelf",
		Query: `div.circ-option.circ-exit-option button span[role="text"]`,
		Text:  "Go To Shelf",
	}
	PlaceHoldLocator = Locator{
		Name:  "place hold",
		Query: `button, [role="button"]`,
		Text:  "Place Hold",
	}
	BorrowLocator = Locator{
		Name:  "borrow",
		Query: `button, [role="button"]`,
		Text:  "Borrow",
	}
)

// DefaultRules is evaluated in order; the first visible affordance wins.
var DefaultRules = []Rule{
	{State: StateAlreadyOwned, Locator: GoToShelfLocator},
	{State: StateHoldAvailable, Locator: PlaceHoldLocator},
	{State: StateBorrowAvailable, Locator: BorrowLocator},
}
