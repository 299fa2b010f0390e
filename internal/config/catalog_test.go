package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}
	return path
}

const validCatalog = `
questions:
  - index: 0
    title: "Old Supreme Court"
    prompt: "Find the code under the emblem."
    answer_code: "MERLION"
    hints:
      - "Near the steps."
      - "Under the plate."
    geofence:
      lat: 1.29027
      lon: 103.8515
      radius_m: 120
  - index: 1
    title: "Fountain"
    prompt: "Read the plaque code."
    answer_code: "CODE2"
`

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog(writeCatalog(t, validCatalog))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if catalog.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", catalog.Len())
	}

	q := catalog.Question(0)
	if q.AnswerCode != "MERLION" || len(q.Hints) != 2 {
		t.Errorf("question 0: %+v", q)
	}
	if q.Geofence == nil || q.Geofence.RadiusMeters != 120 {
		t.Errorf("question 0 geofence: %+v", q.Geofence)
	}
	if catalog.Question(1).Geofence != nil {
		t.Error("question 1 must have no geofence")
	}
}

func TestLoadCatalogRejections(t *testing.T) {
	cases := []struct {
		name, yaml, wantErr string
	}{
		{
			"empty",
			`questions: []`,
			"no questions",
		},
		{
			"out of order index",
			"questions:\n  - index: 1\n    prompt: p\n    answer_code: a\n",
			"out of order",
		},
		{
			"missing answer code",
			"questions:\n  - index: 0\n    prompt: p\n",
			"answer_code",
		},
		{
			"missing prompt",
			"questions:\n  - index: 0\n    answer_code: a\n",
			"prompt",
		},
		{
			"too many hints",
			"questions:\n  - index: 0\n    prompt: p\n    answer_code: a\n    hints: [h1, h2, h3]\n",
			"hints",
		},
		{
			"bad radius",
			"questions:\n  - index: 0\n    prompt: p\n    answer_code: a\n    geofence: {lat: 1, lon: 2, radius_m: 0}\n",
			"radius_m",
		},
		{
			"bad coordinate",
			"questions:\n  - index: 0\n    prompt: p\n    answer_code: a\n    geofence: {lat: 95, lon: 2, radius_m: 10}\n",
			"coordinate",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadCatalog(writeCatalog(t, tc.yaml))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
