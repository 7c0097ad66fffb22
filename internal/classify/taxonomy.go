package classify

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var taxonomyYAML []byte

// Category names with special classification behavior.
const (
	CategoryMiscellaneous = "Miscellaneous"
	CategoryNoAmenities   = "No Amenities"
)

// Category is one entry of the amenity taxonomy: a name and the bag of
// keyword phrases that defines it.
type Category struct {
	Name     string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// LoadTaxonomy parses the embedded taxonomy. Order is preserved; the
// position of each category fixes its surrogate id.
func LoadTaxonomy() ([]Category, error) {
	var cats []Category
	if err := yaml.Unmarshal(taxonomyYAML, &cats); err != nil {
		return nil, eris.Wrap(err, "classify: parse taxonomy")
	}
	if len(cats) == 0 {
		return nil, eris.New("classify: taxonomy is empty")
	}

	seen := make(map[string]bool, len(cats))
	hasMisc, hasNone := false, false
	for _, c := range cats {
		if c.Name == "" {
			return nil, eris.New("classify: taxonomy category with empty name")
		}
		if seen[c.Name] {
			return nil, eris.Errorf("classify: duplicate taxonomy category %q", c.Name)
		}
		seen[c.Name] = true
		if c.Name == CategoryMiscellaneous {
			hasMisc = true
		}
		if c.Name == CategoryNoAmenities {
			hasNone = true
		}
	}
	if !hasMisc || !hasNone {
		return nil, eris.Errorf("classify: taxonomy must define %q and %q", CategoryMiscellaneous, CategoryNoAmenities)
	}

	return cats, nil
}
