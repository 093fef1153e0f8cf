package locations

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/Mayankdev0923/Energon/internal/model"
)

// FileSeeder reads locations from a YAML or JSON document. The document is
// either a bare list or a mapping with a "locations" list.
type FileSeeder struct {
	path string
}

// NewFileSeeder creates a FileSeeder for path.
func NewFileSeeder(path string) *FileSeeder {
	return &FileSeeder{path: path}
}

type seedDocument struct {
	Locations []model.FuelLocation `yaml:"locations"`
}

// Seed implements Seeder.
func (f *FileSeeder) Seed(ctx context.Context) (Collection, error) {
	if err := ctx.Err(); err != nil {
		return Collection{}, eris.Wrap(err, "locations: file seed")
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return Collection{}, eris.Wrapf(err, "locations: read %s", f.path)
	}

	items, err := parseSeed(data)
	if err != nil {
		return Collection{}, eris.Wrapf(err, "locations: parse %s", f.path)
	}
	return build(items)
}

func parseSeed(data []byte) ([]model.FuelLocation, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		var items []model.FuelLocation
		if err := doc.Decode(&items); err != nil {
			return nil, err
		}
		return items, nil
	case yaml.MappingNode:
		var sd seedDocument
		if err := doc.Decode(&sd); err != nil {
			return nil, err
		}
		return sd.Locations, nil
	default:
		return nil, eris.New("seed document must be a list or a mapping")
	}
}
