package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

const (
	// MissingValue is the placeholder recorded when a textual field could
	// not be extracted from a detail page.
	MissingValue = "None"

	// MissingDescription is the placeholder recorded when a detail page has
	// neither a read-more text block nor its container. The site's historic
	// output uses this exact casing, distinct from MissingAddress.
	MissingDescription = "None Found"

	// MissingAddress is the placeholder recorded when a detail page has no
	// address block.
	MissingAddress = "None found"
)

// Listing is one extracted property listing.
//
// Design decision: the output schema mixes a fixed set of well-known fields
// with arbitrary key:value feature rows taken verbatim from the page
// ("Bedrooms": "3", "Pets Allowed": "Yes", ...). Rather than model the whole
// record as an untyped map, Listing keeps the fixed fields as struct members
// and isolates the dynamic rows in Features. MarshalJSON flattens Features
// back into the object so the on-disk shape matches the schema.
type Listing struct {
	// Price is the advertised price text, currency symbol included.
	Price string `json:"price"`

	// Size is the floor or erf size text. Unit superscripts are stripped
	// during normalization, so "150 m²" is stored as "150 m".
	Size string `json:"size"`

	// Description is the free-text listing description.
	Description string `json:"description"`

	// Features holds the key:value feature rows of the listing.
	// Keys are emitted verbatim at the top level of the JSON object and
	// only appear for listings that had such rows.
	Features map[string]string `json:"-"`

	// FeatureList holds feature rows that carried no key:value structure.
	FeatureList []string `json:"features"`

	// Address is the single-line address shown on the page.
	Address string `json:"address"`

	// Province, City and Town are derived positionally from the page
	// breadcrumb, not from parsing Address.
	Province string `json:"Province"`
	City     string `json:"City"`
	Town     string `json:"Town"`

	// ListingNo is the site's canonical listing number and the
	// deduplication key of record. A listing without one is never
	// accepted into a result collection.
	ListingNo string `json:"ListingNo"`

	// ImageURL is the primary lightbox image address. Empty means the page
	// had none; it serializes as JSON null rather than a placeholder string.
	ImageURL string `json:"image_url"`

	// URL is the source detail-page address the listing was extracted from.
	URL string `json:"url"`
}

// NewListing returns a Listing for the given source URL with every field set
// to its missing-value placeholder. Extraction overwrites the fields it finds.
func NewListing(url string) *Listing {
	return &Listing{
		Price:       MissingValue,
		Size:        MissingValue,
		Description: MissingDescription,
		FeatureList: []string{},
		Address:     MissingAddress,
		Province:    MissingValue,
		City:        MissingValue,
		Town:        MissingValue,
		ListingNo:   MissingValue,
		URL:         url,
	}
}

// SetFeature records one key:value feature row.
func (l *Listing) SetFeature(key, value string) {
	if l.Features == nil {
		l.Features = make(map[string]string)
	}
	l.Features[key] = value
}

// HasIdentifier reports whether a usable listing number was extracted.
func (l *Listing) HasIdentifier() bool {
	return l.ListingNo != "" && l.ListingNo != MissingValue
}

// featureKeys returns the dynamic feature keys in deterministic order.
func (l *Listing) featureKeys() []string {
	keys := make([]string, 0, len(l.Features))
	for k := range l.Features {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// fixedKeys is the set of schema keys that are not dynamic feature keys.
// UnmarshalJSON treats everything outside this set as a feature row.
var fixedKeys = map[string]bool{
	"price":       true,
	"size":        true,
	"description": true,
	"features":    true,
	"address":     true,
	"Province":    true,
	"City":        true,
	"Town":        true,
	"ListingNo":   true,
	"image_url":   true,
	"url":         true,
}

// MarshalJSON emits the listing in the output schema: fixed keys in schema
// order with the dynamic feature keys inserted after the description. Dynamic
// keys are sorted so output is reproducible run to run.
func (l Listing) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	writeField := func(key string, value any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')

		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(v)
		return nil
	}

	if err := writeField("price", l.Price); err != nil {
		return nil, err
	}
	if err := writeField("size", l.Size); err != nil {
		return nil, err
	}
	if err := writeField("description", l.Description); err != nil {
		return nil, err
	}
	for _, k := range l.featureKeys() {
		if err := writeField(k, l.Features[k]); err != nil {
			return nil, err
		}
	}

	featureList := l.FeatureList
	if featureList == nil {
		featureList = []string{}
	}
	if err := writeField("features", featureList); err != nil {
		return nil, err
	}

	if err := writeField("address", l.Address); err != nil {
		return nil, err
	}
	if err := writeField("Province", l.Province); err != nil {
		return nil, err
	}
	if err := writeField("City", l.City); err != nil {
		return nil, err
	}
	if err := writeField("Town", l.Town); err != nil {
		return nil, err
	}
	if err := writeField("ListingNo", l.ListingNo); err != nil {
		return nil, err
	}
	var imageURL any
	if l.ImageURL != "" {
		imageURL = l.ImageURL
	}
	if err := writeField("image_url", imageURL); err != nil {
		return nil, err
	}
	if err := writeField("url", l.URL); err != nil {
		return nil, err
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON is the inverse of MarshalJSON: known schema keys populate the
// fixed fields and every remaining key becomes a dynamic feature row.
func (l *Listing) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	str := func(key string, dst *string) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("listing key %q: %w", key, err)
		}
		return nil
	}

	if err := str("price", &l.Price); err != nil {
		return err
	}
	if err := str("size", &l.Size); err != nil {
		return err
	}
	if err := str("description", &l.Description); err != nil {
		return err
	}
	if err := str("address", &l.Address); err != nil {
		return err
	}
	if err := str("Province", &l.Province); err != nil {
		return err
	}
	if err := str("City", &l.City); err != nil {
		return err
	}
	if err := str("Town", &l.Town); err != nil {
		return err
	}
	if err := str("ListingNo", &l.ListingNo); err != nil {
		return err
	}
	if err := str("image_url", &l.ImageURL); err != nil {
		return err
	}
	if err := str("url", &l.URL); err != nil {
		return err
	}

	if v, ok := raw["features"]; ok {
		if err := json.Unmarshal(v, &l.FeatureList); err != nil {
			return fmt.Errorf("listing key %q: %w", "features", err)
		}
	}

	for key, v := range raw {
		if fixedKeys[key] {
			continue
		}
		var value string
		if err := json.Unmarshal(v, &value); err != nil {
			return fmt.Errorf("listing feature key %q: %w", key, err)
		}
		l.SetFeature(key, value)
	}
	return nil
}
