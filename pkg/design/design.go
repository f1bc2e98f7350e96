package design

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/barnframe/pkg/building"
	"github.com/matzehuels/barnframe/pkg/errors"
)

// Design is a building and the openings placed on its walls.
type Design struct {
	Name       string              `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Dimensions building.Dimensions `json:"dimensions" toml:"dimensions" yaml:"dimensions"`
	Openings   []building.Opening  `json:"openings" toml:"openings" yaml:"openings"`
}

// openingNamespace seeds the name-based UUIDs assigned to openings.
var openingNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/barnframe/opening"))

// OpeningID returns the deterministic ID for an opening at position index.
func OpeningID(index int, o building.Opening) string {
	key := fmt.Sprintf("%d|%s|%s|%s|%g|%g|%g|%g",
		index, o.Kind, o.Wall, o.Align, o.XOffset, o.YOffset, o.Width, o.Height)
	id := uuid.NewSHA1(openingNamespace, []byte(key))
	return fmt.Sprintf("%s-%s", o.Kind, id.String()[:8])
}

// Normalize fills defaults in place: center alignment and missing IDs.
func (d *Design) Normalize() {
	for i := range d.Openings {
		o := &d.Openings[i]
		if o.Align == "" {
			o.Align = building.AlignCenter
		}
		if o.ID == "" {
			o.ID = OpeningID(i, *o)
		}
	}
}

// Validate checks the dimensions and every opening, and that opening IDs
// are unique. All problems are reported together.
func (d Design) Validate() error {
	errs := []error{d.Dimensions.Validate()}
	seen := make(map[string]int, len(d.Openings))
	for i, o := range d.Openings {
		errs = append(errs, o.Validate())
		if o.ID == "" {
			continue
		}
		if j, dup := seen[o.ID]; dup {
			errs = append(errs, errors.New(errors.ErrCodeInvalidOpening,
				"duplicate opening id %q (openings %d and %d)", o.ID, j+1, i+1))
			continue
		}
		seen[o.ID] = i
	}
	return errors.Join(errs...)
}

// Opening returns the opening with the given ID.
func (d Design) Opening(id string) (building.Opening, bool) {
	for _, o := range d.Openings {
		if o.ID == id {
			return o, true
		}
	}
	return building.Opening{}, false
}
