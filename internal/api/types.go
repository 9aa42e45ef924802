package api

import "github.com/vegapp/vegapp/internal/session"

// AuthResult is the session payload returned by signin/signup.
type AuthResult struct {
	Token           string
	Email           string
	Username        string
	FavoriteRecipes []string
	FavoriteShops   []session.Shop
	Regimes         []string
}

// Session converts the auth payload into a full client session.
func (a AuthResult) Session() session.Session {
	return session.Session{
		Token:           a.Token,
		Email:           a.Email,
		Username:        a.Username,
		FavoriteRecipes: a.FavoriteRecipes,
		FavoriteShops:   a.FavoriteShops,
		Regimes:         a.Regimes,
	}
}

// RecipeSummary is one row of a search or bookmark listing.
type RecipeSummary struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	AverageNote float64 `json:"averageNote"`
	Difficulty  string  `json:"difficulty"`
	Duration    int     `json:"duration"`
	Cost        float64 `json:"cost"`
}

// RecipeIngredient is one ingredient line of a recipe.
type RecipeIngredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Recipe is the full detail payload.
type Recipe struct {
	ID          string             `json:"_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Difficulty  string             `json:"difficulty"`
	Cost        float64            `json:"cost"`
	Duration    int                `json:"duration"`
	AverageNote float64            `json:"averageNote"`
	Regimes     []string           `json:"regime"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Steps       []string           `json:"steps"`
}

// NewRecipe is the payload for submitting a user recipe.
type NewRecipe struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Difficulty  string             `json:"difficulty"`
	Cost        float64            `json:"cost"`
	Duration    int                `json:"duration"`
	Regimes     []string           `json:"regime"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Steps       []string           `json:"steps"`
}

// Query configures a recipe search. Zero values mean "no filter".
type Query struct {
	Keyword    string
	Regimes    []string
	Categories []string // backend category codes
}

// Article is one news-feed entry.
type Article struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	ImageURL    string `json:"urlToImage"`
}

// Difficulty codes the backend accepts.
const (
	DifficultyEasy   = "FACILE"
	DifficultyMedium = "MOYEN"
	DifficultyHard   = "DIFFICILE"
)

// categoryCodes maps display labels to the backend's category vocabulary.
var categoryCodes = map[string]string{
	"Entrées":   "STARTER",
	"Plats":     "MAIN",
	"Desserts":  "DESSERT",
	"Fêtes":     "PARTY",
	"Fast-food": "FAST FOOD",
	"Healthy":   "HEALTHY",
	"Afrique":   "AFRICA",
	"Asie":      "ASIA",
	"Latino":    "LATINO",
}

// CategoryLabels lists the selectable categories in display order.
var CategoryLabels = []string{
	"Entrées", "Plats", "Desserts",
	"Fêtes", "Fast-food", "Healthy",
	"Afrique", "Asie", "Latino",
}

// CategoryCode translates a display label into the backend code. Unknown
// labels map to the empty string and should be skipped by callers.
func CategoryCode(label string) string {
	return categoryCodes[label]
}
