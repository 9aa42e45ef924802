// Package agencebio queries the Agence Bio open-data API for organic
// businesses around a location.
package agencebio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vegapp/vegapp/internal/session"
)

const (
	// DefaultBaseURL is the public open-data endpoint.
	DefaultBaseURL = "https://opendata.agencebio.org/api/gouv"

	defaultUserAgent = "vegapp/0.1"
	defaultTimeout   = 10 * time.Second
	defaultLimit     = 20
)

// Client talks to the Agence Bio operator directory.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// NewClient builds a Client for the given base URL; empty uses the
// public endpoint.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse agencebio url %q: %w", baseURL, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: u,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Query configures an operator search.
type Query struct {
	ProductCodes []string // CPF codes from the ingredient selection
	Lat, Lng     float64
	Limit        int
}

// Operator is one business from the directory, flattened to the fields
// the Places screen displays.
type Operator struct {
	Siret      string
	Name       string
	Address    string
	PostalCode string
	City       string
	Lat, Lng   float64
	Activities []string
	Websites   []string
}

// Shop converts an operator into a bookmarkable session shop.
func (o Operator) Shop() session.Shop {
	return session.Shop{
		Siret:      o.Siret,
		Name:       o.Name,
		Address:    o.Address,
		PostalCode: o.PostalCode,
		City:       o.City,
	}
}

// wire shapes for the operator payload; only the fields we read.
type operatorsEnvelope struct {
	Items []struct {
		RaisonSociale string `json:"raisonSociale"`
		Siret         string `json:"siret"`
		Activites     []struct {
			Nom string `json:"nom"`
		} `json:"activites"`
		SitesWeb []struct {
			URL string `json:"url"`
		} `json:"siteWebs"`
		Adresses []struct {
			Lieu       string  `json:"lieu"`
			CodePostal string  `json:"codePostal"`
			Ville      string  `json:"ville"`
			Lat        float64 `json:"lat"`
			Long       float64 `json:"long"`
		} `json:"adressesOperateurs"`
	} `json:"items"`
}

// SearchOperators returns businesses selling the given products near the
// given coordinates.
func (c *Client) SearchOperators(ctx context.Context, q Query) ([]Operator, error) {
	if len(q.ProductCodes) == 0 {
		return nil, fmt.Errorf("at least one product code required")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	values := url.Values{}
	values.Set("codesProduits", strings.Join(q.ProductCodes, ","))
	values.Set("lat", strconv.FormatFloat(q.Lat, 'f', -1, 64))
	values.Set("lng", strconv.FormatFloat(q.Lng, 'f', -1, 64))
	values.Set("nb", strconv.Itoa(limit))

	rel := &url.URL{Path: "operateurs/", RawQuery: values.Encode()}
	reqURL := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("agencebio returned status %d", resp.StatusCode)
	}

	var payload operatorsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	operators := make([]Operator, 0, len(payload.Items))
	for _, item := range payload.Items {
		op := Operator{
			Siret: item.Siret,
			Name:  item.RaisonSociale,
		}
		for _, a := range item.Activites {
			if a.Nom != "" {
				op.Activities = append(op.Activities, a.Nom)
			}
		}
		for _, s := range item.SitesWeb {
			if s.URL != "" {
				op.Websites = append(op.Websites, s.URL)
			}
		}
		if len(item.Adresses) > 0 {
			addr := item.Adresses[0]
			op.Address = addr.Lieu
			op.PostalCode = addr.CodePostal
			op.City = addr.Ville
			op.Lat = addr.Lat
			op.Lng = addr.Long
		}
		operators = append(operators, op)
	}
	return operators, nil
}
