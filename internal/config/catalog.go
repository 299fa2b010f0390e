package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/hunt"
)

// maxHintsPerQuestion bounds how many hints one question may carry.
const maxHintsPerQuestion = 2

type catalogFile struct {
	Questions []questionEntry `koanf:"questions"`
}

type questionEntry struct {
	Index      int            `koanf:"index"`
	Title      string         `koanf:"title"`
	Prompt     string         `koanf:"prompt"`
	AnswerCode string         `koanf:"answer_code"`
	Hints      []string       `koanf:"hints"`
	Geofence   *geofenceEntry `koanf:"geofence"`
}

type geofenceEntry struct {
	Lat     float64 `koanf:"lat"`
	Lon     float64 `koanf:"lon"`
	RadiusM float64 `koanf:"radius_m"`
}

// LoadCatalog reads and validates the ordered question catalog from a YAML
// file. The catalog is immutable after load; validation failures abort
// startup rather than surfacing mid-game.
func LoadCatalog(path string) (hunt.Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return hunt.Catalog{}, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var raw catalogFile
	if err := k.UnmarshalWithConf("", &raw, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return hunt.Catalog{}, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	if len(raw.Questions) == 0 {
		return hunt.Catalog{}, fmt.Errorf("catalog %s contains no questions", path)
	}

	questions := make([]hunt.Question, len(raw.Questions))
	for i, q := range raw.Questions {
		if q.Index != i {
			return hunt.Catalog{}, fmt.Errorf("question %d: index %d out of order, want %d", i, q.Index, i)
		}
		if q.Prompt == "" {
			return hunt.Catalog{}, fmt.Errorf("question %d: prompt is required", i)
		}
		if q.AnswerCode == "" {
			return hunt.Catalog{}, fmt.Errorf("question %d: answer_code is required", i)
		}
		if len(q.Hints) > maxHintsPerQuestion {
			return hunt.Catalog{}, fmt.Errorf("question %d: at most %d hints allowed, got %d", i, maxHintsPerQuestion, len(q.Hints))
		}

		var fence *hunt.Geofence
		if q.Geofence != nil {
			g := q.Geofence
			if g.RadiusM <= 0 {
				return hunt.Catalog{}, fmt.Errorf("question %d: geofence radius_m must be positive, got %g", i, g.RadiusM)
			}
			if g.Lat < -90 || g.Lat > 90 || g.Lon < -180 || g.Lon > 180 {
				return hunt.Catalog{}, fmt.Errorf("question %d: geofence coordinate out of range", i)
			}
			fence = &hunt.Geofence{Lat: g.Lat, Lon: g.Lon, RadiusMeters: g.RadiusM}
		}

		questions[i] = hunt.Question{
			Index:      q.Index,
			Title:      q.Title,
			Prompt:     q.Prompt,
			AnswerCode: q.AnswerCode,
			Hints:      append([]string(nil), q.Hints...),
			Geofence:   fence,
		}
	}

	return hunt.Catalog{Questions: questions}, nil
}
