package extract

// Strategy is one self-contained attempt to pull an address out of a page.
// Extract returns the candidate text, or an empty string when the strategy
// finds nothing. Strategies must not mutate the page.
type Strategy interface {
	// Name identifies the strategy in logs and metrics
	Name() string

	// Extract returns a candidate address string, or "" if none was found
	Extract(page *Page) string
}

// Chain runs strategies in priority order until one produces a candidate the
// address validator accepts.
type Chain struct {
	strategies []Strategy
}

// NewChain creates a chain that tries the given strategies in order.
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// DefaultChain returns the standard strategy ordering. The known-geocode
// table is a stop-gap for previously observed parcels and is only appended
// when includeKnown is set.
func DefaultChain(includeKnown bool) *Chain {
	strategies := []Strategy{
		&LabelSiblingStrategy{},
		&TextScanStrategy{},
		&SiblingWalkStrategy{},
		&RegexScanStrategy{},
	}
	if includeKnown {
		strategies = append(strategies, &KnownGeocodeStrategy{})
	}
	return NewChain(strategies...)
}

// Run tries each strategy in order and returns the first validated address,
// whitespace-normalized, together with the name of the strategy that found
// it. A strategy that panics simply advances the chain to the next one.
func (c *Chain) Run(page *Page) (address, strategy string, ok bool) {
	for _, s := range c.strategies {
		candidate := CleanText(tryStrategy(s, page))
		if candidate != "" && IsValidAddress(candidate) {
			return candidate, s.Name(), true
		}
	}
	return "", "", false
}

// tryStrategy shields the chain from a misbehaving strategy; a panic counts
// as "no candidate".
func tryStrategy(s Strategy, page *Page) (candidate string) {
	defer func() {
		if r := recover(); r != nil {
			candidate = ""
		}
	}()
	return s.Extract(page)
}
