package cropref

import (
	"strings"
)

// Profile holds the static reference data for one crop: total lifecycle
// length, per-stage day lengths and the base yield used by the estimator.
type Profile struct {
	Name        string
	TotalDays   int
	Germination int
	Vegetative  int
	Flowering   int
	Maturity    int

	BaseYieldKgPerAcre float64
}

// StageDays is the cumulative span covered by the stage table. Crops whose
// total duration exceeds this sit in "maturity" until TotalDays-based
// harvest projection catches up.
func (p Profile) StageDays() int {
	return p.Germination + p.Vegetative + p.Flowering + p.Maturity
}

// DefaultProfile is applied to crops missing from the table. The 120-day
// total and the 10/40/25/35 stage split are independent fallbacks carried
// over from the upstream data set; they intentionally do not sum.
var DefaultProfile = Profile{
	Name:               "default",
	TotalDays:          120,
	Germination:        10,
	Vegetative:         40,
	Flowering:          25,
	Maturity:           35,
	BaseYieldKgPerAcre: 2000,
}

type Table struct {
	crops map[string]Profile
}

// builtin covers the crops the advisory content is written for.
func builtin() map[string]Profile {
	rows := []Profile{
		{Name: "rice", TotalDays: 120, Germination: 10, Vegetative: 40, Flowering: 25, Maturity: 35, BaseYieldKgPerAcre: 2500},
		{Name: "wheat", TotalDays: 140, Germination: 12, Vegetative: 45, Flowering: 30, Maturity: 40, BaseYieldKgPerAcre: 3000},
		{Name: "maize", TotalDays: 100, Germination: 8, Vegetative: 35, Flowering: 20, Maturity: 30, BaseYieldKgPerAcre: 4000},
		{Name: "cotton", TotalDays: 180, Germination: 15, Vegetative: 60, Flowering: 45, Maturity: 50, BaseYieldKgPerAcre: 500},
		{Name: "tomato", TotalDays: 90, Germination: 7, Vegetative: 30, Flowering: 20, Maturity: 25, BaseYieldKgPerAcre: 25000},
		{Name: "potato", TotalDays: 100, Germination: 10, Vegetative: 35, Flowering: 20, Maturity: 30, BaseYieldKgPerAcre: 20000},
		{Name: "onion", TotalDays: 130, Germination: 12, Vegetative: 50, Flowering: 25, Maturity: 35, BaseYieldKgPerAcre: 15000},
		{Name: "sugarcane", TotalDays: 360, Germination: 30, Vegetative: 150, Flowering: 60, Maturity: 100, BaseYieldKgPerAcre: 70000},
	}
	m := make(map[string]Profile, len(rows))
	for _, r := range rows {
		m[r.Name] = r
	}
	return m
}

// New returns the built-in table. Optional CSV/XLSX overrides are merged on
// top via LoadCSV/LoadXLSX.
func New() *Table {
	return &Table{crops: builtin()}
}

// Lookup resolves a crop name case-insensitively; unknown crops get
// DefaultProfile so every caller always has a usable profile.
func (t *Table) Lookup(crop string) Profile {
	name := strings.ToLower(strings.TrimSpace(crop))
	if p, ok := t.crops[name]; ok {
		return p
	}
	return DefaultProfile
}

// Known reports whether the crop has a dedicated profile.
func (t *Table) Known(crop string) bool {
	_, ok := t.crops[strings.ToLower(strings.TrimSpace(crop))]
	return ok
}

// Crops lists the crops with dedicated profiles.
func (t *Table) Crops() []string {
	out := make([]string, 0, len(t.crops))
	for name := range t.crops {
		out = append(out, name)
	}
	return out
}

func (t *Table) put(p Profile) {
	p.Name = strings.ToLower(strings.TrimSpace(p.Name))
	if p.Name == "" {
		return
	}
	t.crops[p.Name] = p
}
