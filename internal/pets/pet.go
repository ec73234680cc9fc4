package pets

import (
	"fmt"
	"strings"
)

const TableName = "pets"

type Pet struct {
	ID      int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Name    string `json:"name" yaml:"name"`
	Species string `json:"species" yaml:"species"`
}

func (p Pet) String() string {
	return fmt.Sprintf("<Pet %d, %s, %s>", p.ID, p.Name, p.Species)
}

func (p Pet) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("pet name cannot be empty")
	}
	if strings.TrimSpace(p.Species) == "" {
		return fmt.Errorf("species for %q cannot be empty", p.Name)
	}
	return nil
}

// FormatList renders pets the way an interactive shell prints a list.
func FormatList(list []Pet) string {
	parts := make([]string, len(list))
	for i, p := range list {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
