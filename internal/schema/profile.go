package schema

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/pkg/fileutil"
)

// Namespaces of the EDM external profile.
const (
	EDMNS  = "http://www.europeana.eu/schemas/edm/"
	ExtNS  = "http://www.europeana.eu/metis/edm/ext/"
	ORENS  = "http://www.openarchives.org/ore/terms/"
	SKOSNS = "http://www.w3.org/2004/02/skos/core#"
	CCNS   = "http://creativecommons.org/ns#"
	SVCSNS = "http://rdfs.org/sioc/services#"
)

// LocalBaseURL is the base against which relative identifiers in a record
// are resolved. It is reserved and never occurs in real data, so it can be
// stripped again when identifiers are reported.
const LocalBaseURL = "http://example.com/3a051336-f671-4e94-90db-45d3432181fb/"

const profileSchemaURL = "https://github.com/thoreinstein/edmx/profile.schema.json"

// Profile holds the domain constants the checks are parameterized by.
type Profile struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	// LocalBaseURL resolves relative identifiers and is stripped from reported ones.
	LocalBaseURL string `json:"local_base_url" yaml:"local_base_url" toml:"local_base_url"`
	// PrimaryType is the type of the one resource a record is about.
	PrimaryType string `json:"primary_type" yaml:"primary_type" toml:"primary_type"`
	// MarkerType roots the class hierarchy of supported types.
	MarkerType string `json:"marker_type" yaml:"marker_type" toml:"marker_type"`
	// ExcludedNamespace holds categorizing classes that are never valid record types.
	ExcludedNamespace string `json:"excluded_namespace" yaml:"excluded_namespace" toml:"excluded_namespace"`
	// ExtensionNamespace qualifies the provenance attributes.
	ExtensionNamespace   string   `json:"extension_namespace" yaml:"extension_namespace" toml:"extension_namespace"`
	ProvenanceAttributes []string `json:"provenance_attributes" yaml:"provenance_attributes" toml:"provenance_attributes"`
	// TopLevelElements lists the element types that may not be nested in RDF/XML.
	TopLevelElements []string `json:"top_level_elements" yaml:"top_level_elements" toml:"top_level_elements"`
	// RootTypes are the starting points of the orphan check.
	RootTypes []string `json:"root_types" yaml:"root_types" toml:"root_types"`
}

// DefaultProfile returns the EDM external profile.
func DefaultProfile() Profile {
	return Profile{
		Name:                 "edm-external",
		Description:          "Europeana Data Model records as submitted by data providers",
		LocalBaseURL:         LocalBaseURL,
		PrimaryType:          EDMNS + "ProvidedCHO",
		MarkerType:           ExtNS + "EdmClass",
		ExcludedNamespace:    ExtNS,
		ExtensionNamespace:   EDMNS,
		ProvenanceAttributes: []string{"wasGeneratedBy", "confidenceLevel"},
		TopLevelElements: []string{
			EDMNS + "ProvidedCHO",
			ORENS + "Aggregation",
			EDMNS + "WebResource",
			EDMNS + "Agent",
			SKOSNS + "Concept",
			EDMNS + "Place",
			EDMNS + "TimeSpan",
			CCNS + "License",
			SVCSNS + "Service",
		},
		RootTypes: []string{ORENS + "Aggregation"},
	}
}

// IsTopLevel reports whether elements of the given type must not be nested.
func (p Profile) IsTopLevel(typeIRI string) bool {
	return slices.Contains(p.TopLevelElements, typeIRI)
}

// IsProvenanceAttribute reports whether an attribute is a provenance
// annotation to be removed before validation.
func (p Profile) IsProvenanceAttribute(space, local string) bool {
	return space == p.ExtensionNamespace && slices.Contains(p.ProvenanceAttributes, local)
}

// StripLocalBase removes the reserved local base from an identifier.
func (p Profile) StripLocalBase(iri string) string {
	if p.LocalBaseURL == "" {
		return iri
	}
	return strings.TrimPrefix(iri, p.LocalBaseURL)
}

// ProfileFormat returns the document format for a profile path, one of
// "yaml", "toml" or "json".
func ProfileFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	case ".json":
		return "json", nil
	}
	return "", errors.WithHint(
		errors.Wrapf(errors.ErrUnsupportedFormat, "profile %s", path),
		"profiles are .yaml, .yml, .toml or .json files",
	)
}

// LoadProfile reads and validates a profile document.
func LoadProfile(path string) (Profile, error) {
	format, err := ProfileFormat(path)
	if err != nil {
		return Profile{}, err
	}
	data, err := fileutil.ReadFileWithLimit(path, maxResourceSize)
	if err != nil {
		return Profile{}, errors.Wrapf(err, "reading profile %s", path)
	}
	p, err := ParseProfile(data, format)
	if err != nil {
		return Profile{}, errors.Wrapf(err, "profile %s", path)
	}
	return p, nil
}

// ParseProfile decodes a profile document and validates it against the
// profile JSON Schema. Fields the document omits keep their
// DefaultProfile values.
func ParseProfile(data []byte, format string) (Profile, error) {
	var doc any
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Profile{}, errors.Wrap(err, "parsing YAML")
		}
	case "toml":
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return Profile{}, errors.Wrap(err, "parsing TOML")
		}
		doc = m
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return Profile{}, errors.Wrap(err, "parsing JSON")
		}
	default:
		return Profile{}, errors.Wrapf(errors.ErrUnsupportedFormat, "profile format %q", format)
	}

	// Round-trip through JSON so every format validates against the same
	// schema with the same value types.
	raw, err := json.Marshal(doc)
	if err != nil {
		return Profile{}, errors.Wrap(err, "normalizing profile")
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Profile{}, errors.Wrap(err, "normalizing profile")
	}

	sch, err := profileSchema()
	if err != nil {
		return Profile{}, err
	}
	if err := sch.Validate(payload); err != nil {
		return Profile{}, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidProfile, "%v", err),
			"Run: edmx schema profile --json-schema",
		)
	}

	p := DefaultProfile()
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, errors.Wrap(err, "decoding profile")
	}
	return p, nil
}

// ProfileSchema returns the JSON Schema profiles are validated against.
func ProfileSchema() []byte {
	data, err := resources.ReadFile("resources/profile.schema.json")
	if err != nil {
		panic(err)
	}
	return data
}

var profileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(profileSchemaURL, bytes.NewReader(ProfileSchema())); err != nil {
		return nil, errors.Wrap(err, "adding profile schema")
	}
	sch, err := compiler.Compile(profileSchemaURL)
	if err != nil {
		return nil, errors.Wrap(err, "compiling profile schema")
	}
	return sch, nil
})
