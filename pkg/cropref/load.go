package cropref

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadCSV merges crop rows from a CSV file over the built-in table.
// Agronomy teams maintain these files by hand, so headers are matched
// loosely and bad rows are skipped instead of failing the whole load.
func (t *Table) LoadCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return err
	}

	norm := func(s string) string {
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, "\uFEFF") // BOM
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, "-", "")
		s = strings.ReplaceAll(s, "_", "")
		return s
	}
	hmap := map[string]int{}
	for i, h := range head {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cCrop := findAny("Crop", "crop", "name")
	cTotal := findAny("TotalDays", "total", "duration", "total_days")
	cGerm := findAny("Germination", "germination_days", "germ")
	cVeg := findAny("Vegetative", "vegetative_days", "veg")
	cFlo := findAny("Flowering", "flowering_days")
	cMat := findAny("Maturity", "maturity_days")
	cYld := findAny("BaseYield", "base_yield_kg_per_acre", "yield", "baseyieldkg")

	if cCrop == -1 || cTotal == -1 {
		return fmt.Errorf("crop table CSV missing required columns. Found headers: %v\nNeed at least: Crop, TotalDays", head)
	}

	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		atoi := func(idx, def int) int {
			if v, err := strconv.Atoi(get(idx)); err == nil && v > 0 {
				return v
			}
			return def
		}

		total, _ := strconv.Atoi(get(cTotal))
		if total <= 0 {
			continue // skip invalid rows
		}
		yld, _ := strconv.ParseFloat(get(cYld), 64)
		if yld <= 0 {
			yld = DefaultProfile.BaseYieldKgPerAcre
		}

		t.put(Profile{
			Name:               get(cCrop),
			TotalDays:          total,
			Germination:        atoi(cGerm, DefaultProfile.Germination),
			Vegetative:         atoi(cVeg, DefaultProfile.Vegetative),
			Flowering:          atoi(cFlo, DefaultProfile.Flowering),
			Maturity:           atoi(cMat, DefaultProfile.Maturity),
			BaseYieldKgPerAcre: yld,
		})
	}
	return nil
}

// LoadXLSX merges crop rows from the first sheet of an xlsx workbook,
// expecting the same columns as LoadCSV in fixed order:
// Crop, TotalDays, Germination, Vegetative, Flowering, Maturity, BaseYield.
func (t *Table) LoadXLSX(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return err
	}

	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue // header / short row
		}
		cell := func(j int) string {
			if j < len(row) {
				return strings.TrimSpace(row[j])
			}
			return ""
		}
		total, _ := strconv.Atoi(cell(1))
		if total <= 0 {
			continue
		}
		atoi := func(j, def int) int {
			if v, err := strconv.Atoi(cell(j)); err == nil && v > 0 {
				return v
			}
			return def
		}
		yld, _ := strconv.ParseFloat(cell(6), 64)
		if yld <= 0 {
			yld = DefaultProfile.BaseYieldKgPerAcre
		}
		t.put(Profile{
			Name:               cell(0),
			TotalDays:          total,
			Germination:        atoi(2, DefaultProfile.Germination),
			Vegetative:         atoi(3, DefaultProfile.Vegetative),
			Flowering:          atoi(4, DefaultProfile.Flowering),
			Maturity:           atoi(5, DefaultProfile.Maturity),
			BaseYieldKgPerAcre: yld,
		})
	}
	return nil
}
