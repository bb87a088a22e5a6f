package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

type Domain string

const (
	DomainGames       Domain = "games"
	DomainCelebrities Domain = "celebrities"
	DomainTopics      Domain = "topics"
)

// Domains lists all knowledge domains in lookup priority order.
func Domains() []Domain {
	return []Domain{DomainGames, DomainCelebrities, DomainTopics}
}

// Validate checks if the domain is valid
func (d Domain) Validate() error {
	switch d {
	case DomainGames, DomainCelebrities, DomainTopics:
		return nil
	default:
		return goerr.New("invalid knowledge domain", goerr.V("domain", d))
	}
}

// Attribute is one labeled value of a knowledge record. The label is the
// display label; rendering preserves the declared order and skips blanks.
type Attribute struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Well-known attribute labels of the topic domain.
const (
	AttrCategory    = "category"
	AttrCode        = "code"
	AttrExplanation = "explanation"
	AttrRuntime     = "runtime"
)

// RuntimeRoblox marks a topic record as Roblox Studio material.
const RuntimeRoblox = "roblox"

// KnowledgeRecord is the single record shape shared by the three knowledge
// domains. Records are seeded or appended administratively and are read-only
// to the resolution pipeline.
type KnowledgeRecord struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name" yaml:"name"`
	Attributes  []Attribute `json:"attributes" yaml:"attributes"`
	Description string      `json:"description" yaml:"description"`
	Keywords    []string    `json:"keywords" yaml:"keywords"`
	CreatedAt   time.Time   `json:"created_at" yaml:"-"`
}

// Attr returns the value of the first attribute with the given label,
// or an empty string when absent.
func (r *KnowledgeRecord) Attr(label string) string {
	for _, a := range r.Attributes {
		if a.Label == label {
			return a.Value
		}
	}
	return ""
}

// Validate checks if the record can be stored
func (r *KnowledgeRecord) Validate() error {
	if r.Name == "" {
		return goerr.New("knowledge record name is empty")
	}
	for _, a := range r.Attributes {
		if a.Label == "" {
			return goerr.New("knowledge record attribute label is empty", goerr.V("record", r.Name))
		}
	}
	return nil
}
