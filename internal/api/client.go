// Package api talks to the Vegapp REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vegapp/vegapp/internal/session"
)

// Error is an application-level failure: the backend answered but set
// result:false. The message is user-facing.
type Error struct {
	Message string `json:"error"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return "request rejected"
	}
	return e.Message
}

const (
	defaultUserAgent = "vegapp/0.1"
	defaultTimeout   = 10 * time.Second
)

// Client talks to the Vegapp HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// NewClient builds a Client from the configured base URL. The timeout
// bounds every request; zero uses the default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// authEnvelope is the wire shape shared by signin and signup.
type authEnvelope struct {
	Result     bool           `json:"result"`
	Error      string         `json:"error"`
	Token      string         `json:"token"`
	Email      string         `json:"email"`
	Username   string         `json:"username"`
	FavRecipes []string       `json:"favrecipes"`
	FavShops   []session.Shop `json:"favshops"`
	Regime     []string       `json:"regime"`
}

func (e authEnvelope) result() AuthResult {
	return AuthResult{
		Token:           e.Token,
		Email:           e.Email,
		Username:        e.Username,
		FavoriteRecipes: e.FavRecipes,
		FavoriteShops:   e.FavShops,
		Regimes:         e.Regime,
	}
}

// SignUp registers a new account and returns the initial session payload.
func (c *Client) SignUp(ctx context.Context, email, password, username string) (AuthResult, error) {
	body := map[string]string{"email": email, "password": password, "username": username}
	var payload authEnvelope
	if err := c.do(ctx, http.MethodPost, "users/signup", body, &payload); err != nil {
		return AuthResult{}, err
	}
	if !payload.Result {
		return AuthResult{}, &Error{Message: payload.Error}
	}
	return payload.result(), nil
}

// SignIn authenticates an existing account.
func (c *Client) SignIn(ctx context.Context, username, password string) (AuthResult, error) {
	body := map[string]string{"username": username, "password": password}
	var payload authEnvelope
	if err := c.do(ctx, http.MethodPost, "users/signin", body, &payload); err != nil {
		return AuthResult{}, err
	}
	if !payload.Result {
		return AuthResult{}, &Error{Message: payload.Error}
	}
	return payload.result(), nil
}

// SearchRecipes queries recipes by keyword, regimes and categories.
func (c *Client) SearchRecipes(ctx context.Context, q Query) ([]RecipeSummary, error) {
	values := url.Values{}
	if keyword := strings.TrimSpace(q.Keyword); keyword != "" {
		values.Set("keyword", keyword)
	}
	for _, regime := range q.Regimes {
		values.Add("regime", regime)
	}
	for _, category := range q.Categories {
		values.Add("category", category)
	}

	rel := &url.URL{Path: "recipes", RawQuery: values.Encode()}
	var payload struct {
		Result  bool            `json:"result"`
		Error   string          `json:"error"`
		Recipes []RecipeSummary `json:"recipes"`
	}
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	if !payload.Result {
		return nil, &Error{Message: payload.Error}
	}
	return payload.Recipes, nil
}

// FetchRecipe retrieves the full detail for one recipe.
func (c *Client) FetchRecipe(ctx context.Context, id string) (*Recipe, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("recipe id required")
	}
	var payload struct {
		Result bool   `json:"result"`
		Error  string `json:"error"`
		Recipe Recipe `json:"recipe"`
	}
	if err := c.do(ctx, http.MethodGet, "recipes/"+url.PathEscape(id), nil, &payload); err != nil {
		return nil, err
	}
	if !payload.Result {
		return nil, &Error{Message: payload.Error}
	}
	return &payload.Recipe, nil
}

// CreateRecipe submits a user recipe.
func (c *Client) CreateRecipe(ctx context.Context, recipe NewRecipe) error {
	var payload struct {
		Result bool   `json:"result"`
		Error  string `json:"error"`
	}
	if err := c.do(ctx, http.MethodPost, "recipes", recipe, &payload); err != nil {
		return err
	}
	if !payload.Result {
		return &Error{Message: payload.Error}
	}
	return nil
}

// VoteRecipe submits a 1-5 rating.
func (c *Client) VoteRecipe(ctx context.Context, id string, note int) error {
	if note < 1 || note > 5 {
		return fmt.Errorf("note %d out of range 1-5", note)
	}
	body := map[string]int{"note": note}
	var payload struct {
		Result bool   `json:"result"`
		Error  string `json:"error"`
	}
	if err := c.do(ctx, http.MethodPost, "recipes/"+url.PathEscape(id)+"/vote", body, &payload); err != nil {
		return err
	}
	if !payload.Result {
		return &Error{Message: payload.Error}
	}
	return nil
}

// FetchBookmarks lists the user's bookmarked recipes.
func (c *Client) FetchBookmarks(ctx context.Context, token string) ([]RecipeSummary, error) {
	var payload struct {
		Result    bool            `json:"result"`
		Error     string          `json:"error"`
		Bookmarks []RecipeSummary `json:"bookmarks"`
	}
	if err := c.do(ctx, http.MethodGet, "users/bookmarks/"+url.PathEscape(token), nil, &payload); err != nil {
		return nil, err
	}
	if !payload.Result {
		return nil, &Error{Message: payload.Error}
	}
	return payload.Bookmarks, nil
}

// AddBookmark marks a recipe as favorite on the backend.
func (c *Client) AddBookmark(ctx context.Context, token, recipeID string) error {
	return c.resultCall(ctx, http.MethodPost, "users/bookmark", map[string]string{
		"token":    token,
		"recipeId": recipeID,
	})
}

// RemoveBookmark removes a favorite recipe on the backend.
func (c *Client) RemoveBookmark(ctx context.Context, token, recipeID string) error {
	return c.resultCall(ctx, http.MethodDelete, "users/bookmark", map[string]string{
		"token":    token,
		"recipeId": recipeID,
	})
}

// AddRegime records a dietary regime on the backend.
func (c *Client) AddRegime(ctx context.Context, token, regime string) error {
	return c.resultCall(ctx, http.MethodPost, "users/regimes", map[string]string{
		"token":  token,
		"regime": regime,
	})
}

// RemoveRegime removes a dietary regime on the backend.
func (c *Client) RemoveRegime(ctx context.Context, token, regime string) error {
	return c.resultCall(ctx, http.MethodDelete, "users/regimes", map[string]string{
		"token":  token,
		"regime": regime,
	})
}

// shopBookmarkBody carries the full business record on add so the
// backend can store the shop, and just the SIRET on delete.
type shopBookmarkBody struct {
	Token    string        `json:"token"`
	Siret    string        `json:"siret,omitempty"`
	Business *session.Shop `json:"business,omitempty"`
}

// AddShopBookmark bookmarks a business.
func (c *Client) AddShopBookmark(ctx context.Context, token string, shop session.Shop) error {
	return c.resultCall(ctx, http.MethodPost, "users/business/bookmark", shopBookmarkBody{
		Token:    token,
		Business: &shop,
	})
}

// RemoveShopBookmark removes a business bookmark by SIRET.
func (c *Client) RemoveShopBookmark(ctx context.Context, token, siret string) error {
	return c.resultCall(ctx, http.MethodDelete, "users/business/bookmark", shopBookmarkBody{
		Token: token,
		Siret: siret,
	})
}

// FetchArticles retrieves the news feed.
func (c *Client) FetchArticles(ctx context.Context) ([]Article, error) {
	var payload struct {
		Articles []Article `json:"articles"`
	}
	if err := c.do(ctx, http.MethodGet, "articles", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Articles, nil
}

// SearchIngredients resolves a product name into CPF product entries for
// the shop locator.
func (c *Client) SearchIngredients(ctx context.Context, name string) ([]session.Ingredient, error) {
	body := map[string]string{"nom": name}
	var payload struct {
		Ingredients []session.Ingredient `json:"ingredients"`
	}
	if err := c.do(ctx, http.MethodPost, "commerces/ingredientsCpf", body, &payload); err != nil {
		return nil, err
	}
	return payload.Ingredients, nil
}

// resultCall runs a request whose response carries only {result, error}.
func (c *Client) resultCall(ctx context.Context, method, path string, body any) error {
	var payload struct {
		Result bool   `json:"result"`
		Error  string `json:"error"`
	}
	if err := c.do(ctx, method, path, body, &payload); err != nil {
		return err
	}
	if !payload.Result {
		return &Error{Message: payload.Error}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
