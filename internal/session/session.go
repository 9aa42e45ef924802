// Package session holds the authenticated user's client-side state:
// identity, favorites, dietary regimes and shop-locator selections.
package session

// Regime labels are wire values; the backend matches them verbatim.
const (
	RegimeVegan      = "Vegan"
	RegimeVegetarian = "Végé"
	RegimeGlutenFree = "Sans gluten"
	RegimeOrganic    = "Bio"
)

// Regimes is the fixed dietary vocabulary, in display order.
var Regimes = []string{RegimeVegetarian, RegimeOrganic, RegimeGlutenFree, RegimeVegan}

// ValidRegime reports whether label is part of the fixed vocabulary.
func ValidRegime(label string) bool {
	for _, r := range Regimes {
		if r == label {
			return true
		}
	}
	return false
}

// Shop is a bookmarked business, keyed by its SIRET registry number.
type Shop struct {
	Siret      string `toml:"siret" json:"siret"`
	Name       string `toml:"name" json:"name"`
	Address    string `toml:"address" json:"address"`
	PostalCode string `toml:"postal_code" json:"cp"`
	City       string `toml:"city" json:"city"`
}

// Ingredient is one shop-locator search selection. ID is the CPF
// product code the open-data service understands.
type Ingredient struct {
	ID    string `toml:"id" json:"id"`
	Title string `toml:"title" json:"title"`
}

// Session is the whole client-side user state. The zero value is the
// unauthenticated default. Sessions are treated as immutable values:
// every mutation produces a fresh copy, so a Session handed out to a
// reader never changes underneath it.
type Session struct {
	Token    string `toml:"token"`
	Email    string `toml:"email"`
	Username string `toml:"username"`

	FavoriteRecipes []string     `toml:"favorite_recipes"`
	FavoriteShops   []Shop       `toml:"favorite_shops"`
	Regimes         []string     `toml:"regimes"`
	Ingredients     []Ingredient `toml:"ingredients"`
}

// Authenticated reports whether the session belongs to a signed-in user.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// HasFavoriteRecipe reports whether id is bookmarked.
func (s Session) HasFavoriteRecipe(id string) bool {
	for _, r := range s.FavoriteRecipes {
		if r == id {
			return true
		}
	}
	return false
}

// HasFavoriteShop reports whether a shop with the given SIRET is bookmarked.
func (s Session) HasFavoriteShop(siret string) bool {
	for _, sh := range s.FavoriteShops {
		if sh.Siret == siret {
			return true
		}
	}
	return false
}

// HasRegime reports whether the regime label is selected.
func (s Session) HasRegime(label string) bool {
	for _, r := range s.Regimes {
		if r == label {
			return true
		}
	}
	return false
}

// HasIngredient reports whether an ingredient with the given CPF id is selected.
func (s Session) HasIngredient(id string) bool {
	for _, ing := range s.Ingredients {
		if ing.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hold the result across
// further store mutations.
func (s Session) Clone() Session {
	dup := s
	dup.FavoriteRecipes = cloneStrings(s.FavoriteRecipes)
	dup.FavoriteShops = cloneShops(s.FavoriteShops)
	dup.Regimes = cloneStrings(s.Regimes)
	dup.Ingredients = cloneIngredients(s.Ingredients)
	return dup
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	dup := make([]string, len(in))
	copy(dup, in)
	return dup
}

func cloneShops(in []Shop) []Shop {
	if len(in) == 0 {
		return nil
	}
	dup := make([]Shop, len(in))
	copy(dup, in)
	return dup
}

func cloneIngredients(in []Ingredient) []Ingredient {
	if len(in) == 0 {
		return nil
	}
	dup := make([]Ingredient, len(in))
	copy(dup, in)
	return dup
}
