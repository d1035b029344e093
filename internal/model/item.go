package model

import (
	"encoding/json"
)

// DatasetItem is one card record under curation: descriptive metadata plus
// an ordered image list. Position 0 is the front, position 1 the back,
// anything further is an extra. Fields the curation logic never touches
// are carried verbatim from the source document back out to the export
// snapshot, including fields this struct does not model.
type DatasetItem struct {
	Images         []string
	Grade          Grade
	GradingCompany string
	ListingID      string
	ListingURL     string
	Title          string
	Price          float64

	raw        map[string]json.RawMessage
	gradeSet   bool
	companySet bool
}

// SetMetadata records an operator edit of grade and grading company. Once
// edited, both keys appear in the snapshot even when cleared.
func (it *DatasetItem) SetMetadata(grade Grade, company string) {
	it.Grade = grade
	it.GradingCompany = company
	it.gradeSet = true
	it.companySet = true
}

// UnmarshalJSON decodes the known fields and keeps every key of the source
// object so unknown fields survive the round trip to the snapshot.
func (it *DatasetItem) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if v, ok := fields["images"]; ok {
		if err := json.Unmarshal(v, &it.Images); err != nil {
			return err
		}
	}
	if v, ok := fields["grade"]; ok {
		if err := json.Unmarshal(v, &it.Grade); err != nil {
			return err
		}
	}
	if v, ok := fields["grading_company"]; ok {
		if err := json.Unmarshal(v, &it.GradingCompany); err != nil {
			return err
		}
	}

	// Opaque display fields; a type mismatch here is not fatal because the
	// raw value is passed through untouched anyway.
	if v, ok := fields["listing_id"]; ok {
		_ = json.Unmarshal(v, &it.ListingID)
	}
	if v, ok := fields["listing_url"]; ok {
		_ = json.Unmarshal(v, &it.ListingURL)
	}
	if v, ok := fields["title"]; ok {
		_ = json.Unmarshal(v, &it.Title)
	}
	if v, ok := fields["price"]; ok {
		_ = json.Unmarshal(v, &it.Price)
	}

	it.raw = fields
	return nil
}

// MarshalJSON re-emits the original document keys, overlaying the fields
// the curation logic may have edited (images, grade, grading company).
func (it DatasetItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(it.raw)+3)
	for k, v := range it.raw {
		out[k] = v
	}

	set := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		out[key] = b
		return nil
	}

	images := it.Images
	if images == nil {
		images = []string{}
	}
	if err := set("images", images); err != nil {
		return nil, err
	}

	_, hadGrade := it.raw["grade"]
	if it.gradeSet || hadGrade || !it.Grade.IsAbsent() {
		if err := set("grade", it.Grade); err != nil {
			return nil, err
		}
	}
	_, hadCompany := it.raw["grading_company"]
	if it.companySet || hadCompany || it.GradingCompany != "" {
		if err := set("grading_company", it.GradingCompany); err != nil {
			return nil, err
		}
	}

	if it.raw == nil {
		// Programmatically built item: emit the descriptive fields it has.
		if it.ListingID != "" {
			if err := set("listing_id", it.ListingID); err != nil {
				return nil, err
			}
		}
		if it.ListingURL != "" {
			if err := set("listing_url", it.ListingURL); err != nil {
				return nil, err
			}
		}
		if it.Title != "" {
			if err := set("title", it.Title); err != nil {
				return nil, err
			}
		}
		if it.Price != 0 {
			if err := set("price", it.Price); err != nil {
				return nil, err
			}
		}
	}

	return json.Marshal(out)
}
