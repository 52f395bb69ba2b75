// Package asset holds the page asset domain: descriptors, the per-cycle store
// and the markup renderer.
package asset

import (
	"fmt"
	"net/url"
)

// Type selects the rendering strategy of an asset
type Type string

const (
	TypeCSS    Type = "css"
	TypeJS     Type = "js"
	TypeInline Type = "inline"
)

// IsKnown reports whether the type has a rendering strategy
func (t Type) IsKnown() bool {
	switch t {
	case TypeCSS, TypeJS, TypeInline:
		return true
	}
	return false
}

// String returns the string representation of Type
func (t Type) String() string {
	return string(t)
}

// Group selects the output slot of an asset
type Group string

const (
	GroupHead   Group = "head"
	GroupFooter Group = "footer"
)

// IsKnown reports whether the group maps to an output slot
func (g Group) IsKnown() bool {
	return g == GroupHead || g == GroupFooter
}

// String returns the string representation of Group
func (g Group) String() string {
	return string(g)
}

// Defaults applied to absent record fields
const (
	DefaultType     = TypeInline
	DefaultGroup    = GroupHead
	DefaultPriority = 50

	MinPriority = 1
	MaxPriority = 100

	// PluginsPath is appended to the host base URL when resolving relative sources
	PluginsPath = "plugins/"
)

// Policy decides how malformed records are handled during normalization
type Policy int

const (
	// PolicyPermissive stores every record and lets rendering degrade
	PolicyPermissive Policy = iota
	// PolicyStrict rejects records with a missing source, unknown type or group
	PolicyStrict
)

// String returns the string representation of Policy
func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "permissive"
}

// Record is one loosely-typed asset submission. Nil fields take their defaults.
type Record struct {
	Type     *Type   `yaml:"type,omitempty" json:"type,omitempty"`
	Group    *Group  `yaml:"group,omitempty" json:"group,omitempty"`
	Source   *string `yaml:"source,omitempty" json:"source,omitempty"`
	Priority *int    `yaml:"priority,omitempty" json:"priority,omitempty"`
	Defer    *bool   `yaml:"defer,omitempty" json:"defer,omitempty"`
	Async    *bool   `yaml:"async,omitempty" json:"async,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}

// CSS returns a stylesheet record
func CSS(source string) Record {
	return Record{Type: ptr(TypeCSS), Source: ptr(source)}
}

// JS returns a script record
func JS(source string) Record {
	return Record{Type: ptr(TypeJS), Source: ptr(source)}
}

// Inline returns an inline script record. The body is emitted verbatim.
func Inline(body string) Record {
	return Record{Type: ptr(TypeInline), Source: ptr(body)}
}

// InGroup returns a copy of the record placed in group g
func (r Record) InGroup(g Group) Record {
	r.Group = ptr(g)
	return r
}

// InFooter returns a copy of the record placed in the footer group
func (r Record) InFooter() Record {
	return r.InGroup(GroupFooter)
}

// WithPriority returns a copy of the record with the given priority
func (r Record) WithPriority(p int) Record {
	r.Priority = ptr(p)
	return r
}

// Deferred returns a copy of the record with the defer flag set
func (r Record) Deferred() Record {
	r.Defer = ptr(true)
	return r
}

// WithAsync returns a copy of the record with the async flag set
func (r Record) WithAsync() Record {
	r.Async = ptr(true)
	return r
}

// Descriptor is a normalized, immutable asset
type Descriptor struct {
	assetType Type
	group     Group
	source    string
	priority  int
	deferred  bool
	async     bool
}

// Type returns the asset type
func (d Descriptor) Type() Type {
	return d.assetType
}

// Group returns the placement group
func (d Descriptor) Group() Group {
	return d.group
}

// Source returns the resolved URL, or the raw body for inline scripts
func (d Descriptor) Source() string {
	return d.source
}

// Priority returns the ordering priority; higher sorts first
func (d Descriptor) Priority() int {
	return d.priority
}

// Defer reports whether a js asset carries the defer attribute
func (d Descriptor) Defer() bool {
	return d.deferred
}

// Async reports whether a js asset carries the async attribute
func (d Descriptor) Async() bool {
	return d.async
}

// String returns a string representation of the descriptor
func (d Descriptor) String() string {
	return fmt.Sprintf("Asset{Type: %s, Group: %s, Priority: %d, Source: %q}",
		d.assetType, d.group, d.priority, d.source)
}

// Normalize applies defaults to rec and resolves relative css/js sources
// against baseURL as <baseURL>plugins/<source>. Under PolicyPermissive it never
// fails; under PolicyStrict it rejects records that would render degraded.
func Normalize(rec Record, baseURL string, policy Policy) (Descriptor, error) {
	d := Descriptor{
		assetType: DefaultType,
		group:     DefaultGroup,
		priority:  DefaultPriority,
	}
	if rec.Type != nil {
		d.assetType = *rec.Type
	}
	if rec.Group != nil {
		d.group = *rec.Group
	}
	if rec.Source != nil {
		d.source = *rec.Source
	}
	if rec.Priority != nil {
		d.priority = *rec.Priority
	}
	if rec.Defer != nil {
		d.deferred = *rec.Defer
	}
	if rec.Async != nil {
		d.async = *rec.Async
	}

	if policy == PolicyStrict {
		if err := validate(d); err != nil {
			return Descriptor{}, err
		}
	}

	if d.assetType != TypeInline && !IsAbsoluteURL(d.source) {
		d.source = baseURL + PluginsPath + d.source
	}

	return d, nil
}

func validate(d Descriptor) error {
	if !d.assetType.IsKnown() {
		return &UnsupportedAssetTypeError{Type: d.assetType}
	}
	if !d.group.IsKnown() {
		return &InvalidAssetError{Field: "group", Reason: fmt.Sprintf("%q is not one of head, footer", string(d.group))}
	}
	if d.source == "" {
		return &InvalidAssetError{Field: "source", Reason: "is required"}
	}
	if d.priority < MinPriority || d.priority > MaxPriority {
		return &InvalidAssetError{Field: "priority", Reason: fmt.Sprintf("must be between %d and %d, got %d", MinPriority, MaxPriority, d.priority)}
	}
	return nil
}

// IsAbsoluteURL reports whether s is a well-formed URL with both a scheme and
// a host. Host-less forms such as data:, javascript: or http:foo.js are not.
func IsAbsoluteURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
