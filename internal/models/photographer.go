// internal/models/photographer.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is a photographer identifier. The upstream API sends numbers for the
// collection and strings or numbers for details, so both are accepted.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("photographer id must be a number or string: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if _, ok := id.Number(); ok {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string {
	return string(id)
}

// Number returns the numeric value of the id when it has one.
func (id ID) Number() (float64, bool) {
	s := strings.TrimSpace(string(id))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Photographer is one provider record. Styles, Portfolio and Reviews are only
// populated by the detail endpoint.
type Photographer struct {
	ID         ID       `json:"id"`
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Bio        string   `json:"bio,omitempty"`
	Price      float64  `json:"price"`
	Rating     float64  `json:"rating"`
	Tags       []string `json:"tags,omitempty"`
	ProfilePic string   `json:"profilePic,omitempty"`

	Styles    []string `json:"styles,omitempty"`
	Portfolio []string `json:"portfolio,omitempty"`
	Reviews   []Review `json:"reviews,omitempty"`
}

type Review struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
	Date    string `json:"date"`
}

// IsEmpty reports whether the record carries nothing worth rendering.
func (p *Photographer) IsEmpty() bool {
	return p == nil || (p.ID == "" && p.Name == "")
}

// HasTag reports whether tag is one of p's tags (exact match).
func (p *Photographer) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
