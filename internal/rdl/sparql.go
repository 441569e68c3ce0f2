// Package rdl queries the POSC Caesar Reference Data Library SPARQL endpoint
// for equipment class validation and discovery.
package rdl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultEndpoint is the public PCA RDL SPARQL endpoint.
const DefaultEndpoint = "https://data.posccaesar.org/rdl/sparql"

const sparqlPrefixes = `
  PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
  PREFIX rdl: <http://data.posccaesar.org/rdl/>
  PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>
  PREFIX owl: <http://www.w3.org/2002/07/owl#>
  PREFIX skos: <http://www.w3.org/2004/02/skos/core#>
  PREFIX text: <http://jena.apache.org/text#>
`

// uriPattern scopes which URIs are worth sending to the endpoint at all.
var uriPattern = regexp.MustCompile(`^http://(data\.posccaesar\.org|sandbox\.dexpi\.org)/rdl/`)

// ValidURIFormat reports whether a URI is within the accepted RDL namespaces.
func ValidURIFormat(uri string) bool {
	return uriPattern.MatchString(uri)
}

// ClassMatch is one search hit from the RDL.
type ClassMatch struct {
	URI   string  `json:"uri"`
	Label string  `json:"label"`
	Score float64 `json:"score,omitempty"`
}

// Client queries the PCA SPARQL endpoint. It implements scoring.URIVerifier.
type Client struct {
	endpoint   string
	httpClient *http.Client
	retries    int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithEndpoint overrides the SPARQL endpoint, mainly for tests.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetries overrides the number of attempts per query.
func WithRetries(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.retries = n
		}
	}
}

// NewClient creates a SPARQL client against the public PCA endpoint.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		retries:    3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VerifyClassURI checks that a URI exists in the RDL and returns its
// rdfs:label. An empty label with nil error means the URI is unknown to the
// endpoint.
func (c *Client) VerifyClassURI(ctx context.Context, uri string) (string, error) {
	if !ValidURIFormat(uri) {
		return "", fmt.Errorf("uri %q is outside the RDL namespaces", uri)
	}

	query := fmt.Sprintf(`
    %s
    SELECT ?label
    WHERE {
      <%s> rdfs:label ?label .
    }
    LIMIT 1
  `, sparqlPrefixes, uri)

	result, err := c.runQuery(ctx, query)
	if err != nil {
		return "", err
	}
	if len(result.Results.Bindings) == 0 {
		return "", nil
	}
	return result.Results.Bindings[0]["label"].Value, nil
}

// SearchEquipmentClass searches the RDL for classes matching a term. It tries
// the Jena full-text index first and falls back to an rdfs:label substring
// filter when the text index yields nothing.
func (c *Client) SearchEquipmentClass(ctx context.Context, term string) ([]ClassMatch, error) {
	textQuery := fmt.Sprintf(`
    %s
    SELECT ?subject ?score ?label
    WHERE {
      (?subject ?score ?label) text:query ("%s*") .
    }
    ORDER BY DESC(?score)
    LIMIT 10
  `, sparqlPrefixes, escapeLiteral(term))

	result, err := c.runQuery(ctx, textQuery)
	if err == nil && len(result.Results.Bindings) > 0 {
		matches := make([]ClassMatch, 0, len(result.Results.Bindings))
		for _, b := range result.Results.Bindings {
			score, _ := strconv.ParseFloat(b["score"].Value, 64)
			matches = append(matches, ClassMatch{
				URI:   b["subject"].Value,
				Label: b["label"].Value,
				Score: score,
			})
		}
		return matches, nil
	}

	fallbackQuery := fmt.Sprintf(`
    %s
    SELECT ?uri ?label
    WHERE {
      ?uri rdfs:label ?label .
      FILTER(CONTAINS(LCASE(?label), "%s"))
    }
    LIMIT 10
  `, sparqlPrefixes, escapeLiteral(strings.ToLower(term)))

	result, err = c.runQuery(ctx, fallbackQuery)
	if err != nil {
		return nil, err
	}
	matches := make([]ClassMatch, 0, len(result.Results.Bindings))
	for _, b := range result.Results.Bindings {
		matches = append(matches, ClassMatch{
			URI:   b["uri"].Value,
			Label: b["label"].Value,
		})
	}
	return matches, nil
}

type sparqlResponse struct {
	Results struct {
		Bindings []map[string]sparqlBinding `json:"bindings"`
	} `json:"results"`
}

type sparqlBinding struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// runQuery executes a SPARQL query with exponential backoff between attempts.
func (c *Client) runQuery(ctx context.Context, query string) (*sparqlResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("output", "json")
	reqURL := c.endpoint + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.doOnce(ctx, reqURL)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("sparql query failed after %d attempts: %w", c.retries, lastErr)
}

func (c *Client) doOnce(ctx context.Context, reqURL string) (*sparqlResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("sparql endpoint returned %s", resp.Status)
	}

	var parsed sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode sparql response: %w", err)
	}
	return &parsed, nil
}

// escapeLiteral escapes quotes and backslashes for embedding in a SPARQL
// string literal.
func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
