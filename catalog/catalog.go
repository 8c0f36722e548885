// Package catalog reads the image descriptors the wall is built from.
//
// Two JSON shapes are accepted: a flat array of records
//
//	[{"id": 1, "slug": "acme", "imageUrl": "https://..."}]
//
// and a GraphQL collection envelope
//
//	{"allCollections": {"edges": [{"node": {"id": "1", "slug": "acme", "imageUrl": ""}}]}}
//
// Numeric ids are turned into strings and a missing name defaults to the slug.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

// FallbackURL is used for envelope entries without an image
const FallbackURL = "fallback:logo"

// DefaultLimit is how many descriptors the wall shows unless told otherwise
const DefaultLimit = 25

// ErrEmpty is returned when a catalog yields no descriptors
var ErrEmpty = errors.New("catalog is empty")

// ErrNoPath is returned by Load when no catalog file is configured
var ErrNoPath = errors.New("no catalog file given")

// Descriptor identifies one image on the wall
type Descriptor struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	ImageURL string `json:"imageUrl"`
	Name     string `json:"name"`
}

// Options controls where descriptors come from
type Options struct {
	// Path is the JSON catalog file
	Path string `toml:"path"`

	// Limit caps the number of descriptors, 0 for no cap
	Limit int `toml:"limit"`
}

// DefaultOptions returns the catalog defaults
func DefaultOptions() Options {
	return Options{Limit: DefaultLimit}
}

// flexID decodes a JSON string or number into a string
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

type record struct {
	ID       flexID `json:"id"`
	Slug     string `json:"slug"`
	ImageURL string `json:"imageUrl"`
	Name     string `json:"name"`
}

func (r record) descriptor() Descriptor {
	d := Descriptor{
		ID:       string(r.ID),
		Slug:     r.Slug,
		ImageURL: r.ImageURL,
		Name:     r.Name,
	}
	if d.Name == "" {
		d.Name = d.Slug
	}
	return d
}

type envelope struct {
	AllCollections *struct {
		Edges []struct {
			Node *record `json:"node"`
		} `json:"edges"`
	} `json:"allCollections"`
}

// Parse decodes descriptors from either catalog shape and applies limit
func Parse(data []byte, limit int) ([]Descriptor, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}

	var out []Descriptor
	switch trimmed[0] {
	case '[':
		var recs []record
		if err := json.Unmarshal(trimmed, &recs); err != nil {
			return nil, fmt.Errorf("failed to decode catalog array: %w", err)
		}
		out = make([]Descriptor, 0, len(recs))
		for i, r := range recs {
			if r.ID == "" {
				r.ID = flexID(strconv.Itoa(i + 1))
			}
			out = append(out, r.descriptor())
		}
	case '{':
		out = fromEnvelope(trimmed)
	default:
		return nil, fmt.Errorf("failed to decode catalog: unexpected %q", trimmed[0])
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// fromEnvelope flattens a GraphQL collection response. A malformed envelope
// yields no descriptors instead of an error.
func fromEnvelope(data []byte) []Descriptor {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || env.AllCollections == nil {
		return nil
	}

	out := make([]Descriptor, 0, len(env.AllCollections.Edges))
	for _, e := range env.AllCollections.Edges {
		if e.Node == nil {
			continue
		}
		d := e.Node.descriptor()
		if d.ImageURL == "" {
			d.ImageURL = FallbackURL
		}
		out = append(out, d)
	}
	return out
}

// Load reads and parses the catalog file named in opts
func Load(opts Options) ([]Descriptor, error) {
	if opts.Path == "" {
		return nil, ErrNoPath
	}
	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	descs, err := Parse(data, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Path, err)
	}
	return descs, nil
}
