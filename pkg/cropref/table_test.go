package cropref

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLookupCaseInsensitive(t *testing.T) {
	tbl := New()
	for _, name := range []string{"rice", "Rice", "RICE", "  rice "} {
		p := tbl.Lookup(name)
		if p.Name != "rice" || p.TotalDays != 120 {
			t.Errorf("Lookup(%q) = %+v, want rice profile", name, p)
		}
	}
}

func TestLookupUnknownGetsDefault(t *testing.T) {
	tbl := New()
	p := tbl.Lookup("dragonfruit")
	if p != DefaultProfile {
		t.Errorf("unknown crop = %+v, want DefaultProfile", p)
	}
	if tbl.Known("dragonfruit") {
		t.Error("Known should be false for unknown crop")
	}
	if !tbl.Known("Sugarcane") {
		t.Error("Known should be true for sugarcane regardless of case")
	}
}

func TestBuiltinTable(t *testing.T) {
	tbl := New()
	cases := []struct {
		crop  string
		total int
		yield float64
	}{
		{"rice", 120, 2500},
		{"wheat", 140, 3000},
		{"maize", 100, 4000},
		{"cotton", 180, 500},
		{"tomato", 90, 25000},
		{"potato", 100, 20000},
		{"onion", 130, 15000},
		{"sugarcane", 360, 70000},
	}
	for _, c := range cases {
		p := tbl.Lookup(c.crop)
		if p.TotalDays != c.total || p.BaseYieldKgPerAcre != c.yield {
			t.Errorf("%s: got total=%d yield=%.0f, want %d/%.0f",
				c.crop, p.TotalDays, p.BaseYieldKgPerAcre, c.total, c.yield)
		}
	}
	if got := len(tbl.Crops()); got != len(cases) {
		t.Errorf("Crops() returned %d entries, want %d", got, len(cases))
	}
}

func TestLoadCSVOverridesAndAdds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crops.csv")
	csv := "Crop,Total Days,Germination,Vegetative,Flowering,Maturity,Base Yield\n" +
		"Rice,125,11,42,26,36,2600\n" +
		"millet,95,8,32,20,28,1800\n" +
		"badrow,,,,,,\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl := New()
	if err := tbl.LoadCSV(path); err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}

	rice := tbl.Lookup("rice")
	if rice.TotalDays != 125 || rice.BaseYieldKgPerAcre != 2600 {
		t.Errorf("rice override not applied: %+v", rice)
	}
	millet := tbl.Lookup("MILLET")
	if millet.TotalDays != 95 || millet.Germination != 8 {
		t.Errorf("millet not added: %+v", millet)
	}
	if tbl.Known("badrow") {
		t.Error("row without TotalDays should be skipped")
	}
	// other builtins untouched
	if w := tbl.Lookup("wheat"); w.TotalDays != 140 {
		t.Errorf("wheat disturbed by CSV load: %+v", w)
	}
}

func TestLoadCSVBOMHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.csv")
	csv := "\ufeffCrop,TotalDays,Germination,Vegetative,Flowering,Maturity,BaseYield\n" +
		"jowar,110,9,38,22,30,1200\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl := New()
	if err := tbl.LoadCSV(path); err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if p := tbl.Lookup("jowar"); p.TotalDays != 110 || p.BaseYieldKgPerAcre != 1200 {
		t.Errorf("BOM-prefixed header broke column matching: %+v", p)
	}
}

func TestLoadCSVMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("Crop,Yield\nrice,2500\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := New().LoadCSV(path); err == nil {
		t.Fatal("expected error for CSV without TotalDays column")
	}
}

func TestLoadCSVFillsDefaultsForMissingStageDays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.csv")
	if err := os.WriteFile(path, []byte("Crop,TotalDays\nbarley,115\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl := New()
	if err := tbl.LoadCSV(path); err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	p := tbl.Lookup("barley")
	if p.TotalDays != 115 {
		t.Errorf("total = %d, want 115", p.TotalDays)
	}
	if p.Germination != DefaultProfile.Germination || p.BaseYieldKgPerAcre != DefaultProfile.BaseYieldKgPerAcre {
		t.Errorf("missing columns should fall back to defaults: %+v", p)
	}
}
