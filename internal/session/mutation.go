package session

import "fmt"

// Kind selects which field a Mutation touches. The tagged variant keeps
// mutation dispatch exhaustive at compile time instead of routing on
// field-name strings.
type Kind int

const (
	ToggleRegime Kind = iota
	ToggleFavoriteRecipe
	ToggleFavoriteShop
	AppendIngredient
	RemoveIngredient
)

// String returns the kind's wire-friendly name, used in logs and sync keys.
func (k Kind) String() string {
	switch k {
	case ToggleRegime:
		return "regime"
	case ToggleFavoriteRecipe:
		return "favorite-recipe"
	case ToggleFavoriteShop:
		return "favorite-shop"
	case AppendIngredient:
		return "append-ingredient"
	case RemoveIngredient:
		return "remove-ingredient"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Mutation describes one intended change to the session. Exactly one of
// the value fields is meaningful, selected by Kind.
type Mutation struct {
	Kind       Kind
	Regime     string
	RecipeID   string
	Shop       Shop
	Ingredient Ingredient
}

// Key identifies the logical slot a mutation targets. Two mutations with
// the same key must be synchronized serially; mutations with different
// keys are independent.
func (m Mutation) Key() string {
	switch m.Kind {
	case ToggleRegime:
		return "regime/" + m.Regime
	case ToggleFavoriteRecipe:
		return "recipe/" + m.RecipeID
	case ToggleFavoriteShop:
		return "shop/" + m.Shop.Siret
	case AppendIngredient, RemoveIngredient:
		return "ingredient/" + m.Ingredient.ID
	default:
		return "unknown"
	}
}

// Apply returns the session after m, the exact inverse mutation, and
// whether anything changed. It never modifies s in place.
//
// Callers that need to undo an applied mutation against the live store
// should use Store.Revert rather than re-applying the inverse: the
// rollback contract is "restore the pre-mutation membership", and a
// blind re-toggle breaks when another mutation of the same element
// landed in between.
func Apply(s Session, m Mutation) (Session, Mutation, bool) {
	next := s.Clone()

	switch m.Kind {
	case ToggleRegime:
		if next.HasRegime(m.Regime) {
			next.Regimes = removeString(next.Regimes, m.Regime)
		} else {
			next.Regimes = append(next.Regimes, m.Regime)
		}
		return next, m, true

	case ToggleFavoriteRecipe:
		if next.HasFavoriteRecipe(m.RecipeID) {
			next.FavoriteRecipes = removeString(next.FavoriteRecipes, m.RecipeID)
		} else {
			next.FavoriteRecipes = append(next.FavoriteRecipes, m.RecipeID)
		}
		return next, m, true

	case ToggleFavoriteShop:
		if next.HasFavoriteShop(m.Shop.Siret) {
			next.FavoriteShops = removeShop(next.FavoriteShops, m.Shop.Siret)
		} else {
			next.FavoriteShops = append(next.FavoriteShops, m.Shop)
		}
		return next, m, true

	case AppendIngredient:
		// Duplicate selections are rejected so the locator list stays
		// one entry per product.
		if next.HasIngredient(m.Ingredient.ID) {
			return s, m, false
		}
		next.Ingredients = append(next.Ingredients, m.Ingredient)
		inverse := Mutation{Kind: RemoveIngredient, Ingredient: m.Ingredient}
		return next, inverse, true

	case RemoveIngredient:
		if !next.HasIngredient(m.Ingredient.ID) {
			return s, m, false
		}
		next.Ingredients = removeIngredientByID(next.Ingredients, m.Ingredient.ID)
		inverse := Mutation{Kind: AppendIngredient, Ingredient: m.Ingredient}
		return next, inverse, true

	default:
		return s, m, false
	}
}

// Added reports whether applying m to s results in an insertion (true)
// or a removal (false). The sync engine uses this to pick POST vs DELETE.
func Added(s Session, m Mutation) bool {
	switch m.Kind {
	case ToggleRegime:
		return !s.HasRegime(m.Regime)
	case ToggleFavoriteRecipe:
		return !s.HasFavoriteRecipe(m.RecipeID)
	case ToggleFavoriteShop:
		return !s.HasFavoriteShop(m.Shop.Siret)
	case AppendIngredient:
		return true
	case RemoveIngredient:
		return false
	default:
		return false
	}
}

// contains reports whether the element a mutation targets is currently
// a member of the session.
func contains(s Session, m Mutation) bool {
	switch m.Kind {
	case ToggleRegime:
		return s.HasRegime(m.Regime)
	case ToggleFavoriteRecipe:
		return s.HasFavoriteRecipe(m.RecipeID)
	case ToggleFavoriteShop:
		return s.HasFavoriteShop(m.Shop.Siret)
	case AppendIngredient, RemoveIngredient:
		return s.HasIngredient(m.Ingredient.ID)
	default:
		return false
	}
}

func removeString(in []string, v string) []string {
	out := in[:0]
	for _, s := range in {
		if s != v {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func removeShop(in []Shop, siret string) []Shop {
	out := in[:0]
	for _, s := range in {
		if s.Siret != siret {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func removeIngredientByID(in []Ingredient, id string) []Ingredient {
	out := in[:0]
	for _, ing := range in {
		if ing.ID != id {
			out = append(out, ing)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
