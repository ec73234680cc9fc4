package seeder

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rana718/petseed/internal/pets"
	"gopkg.in/yaml.v3"
)

var ErrEmptyFixture = errors.New("fixture contains no pets")

// LoadFixture reads a list of pets from a .json, .yaml or .yml file. IDs in
// the file are ignored; the database assigns new ones.
func LoadFixture(path string) ([]pets.Pet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var list []pets.Pet
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &list)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &list)
	default:
		return nil, fmt.Errorf("unsupported fixture format %q (use .json, .yaml or .yml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}

	if len(list) == 0 {
		return nil, ErrEmptyFixture
	}

	for i := range list {
		list[i].ID = 0
		if err := list[i].Validate(); err != nil {
			return nil, fmt.Errorf("fixture entry %d: %w", i+1, err)
		}
	}
	return list, nil
}
