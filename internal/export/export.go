package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Rana718/petseed/internal/pets"
	"gopkg.in/yaml.v3"
)

// Source is anything that can list every pet, normally *pets.Repository.
type Source interface {
	All(ctx context.Context) ([]pets.Pet, error)
}

var formats = map[string]string{
	"json": "json",
	"csv":  "csv",
	"yaml": "yaml",
	"yml":  "yaml",
}

// Export writes every pet to pets_<timestamp>.<ext> under exportPath and
// returns the file path. JSON and YAML output can be fed back to seed
// --fixture.
func Export(ctx context.Context, src Source, exportPath, format string) (string, error) {
	if format == "" {
		format = "json"
	}
	ext, ok := formats[strings.ToLower(format)]
	if !ok {
		return "", fmt.Errorf("unsupported export format %q (use json, csv or yaml)", format)
	}

	list, err := src.All(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read pets: %w", err)
	}
	if list == nil {
		list = []pets.Pet{}
	}

	var data []byte
	switch ext {
	case "csv":
		data, err = toCSV(list)
	case "yaml":
		data, err = yaml.Marshal(list)
	default:
		data, err = json.MarshalIndent(list, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode pets: %w", err)
	}

	if err := os.MkdirAll(exportPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filePath := filepath.Join(exportPath, fmt.Sprintf("pets_%s.%s", timestamp, ext))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filePath, nil
}

func toCSV(list []pets.Pet) ([]byte, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"id", "name", "species"}); err != nil {
		return nil, err
	}
	for _, p := range list {
		if err := w.Write([]string{strconv.FormatInt(p.ID, 10), p.Name, p.Species}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return []byte(sb.String()), w.Error()
}
