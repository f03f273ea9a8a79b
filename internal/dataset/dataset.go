package dataset

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// Record is one row of the passenger manifest. Attribute fields are
// pointers so that missing values survive decoding as nil rather than
// a zero value.
type Record struct {
	PassengerID string   `csv:"PassengerId"`
	Survived    *int     `csv:"Survived,omitempty"`
	Pclass      *int     `csv:"Pclass,omitempty"`
	Name        *string  `csv:"Name,omitempty"`
	Sex         *string  `csv:"Sex,omitempty"`
	Age         *float64 `csv:"Age,omitempty"`
	SibSp       *int     `csv:"SibSp,omitempty"`
	Parch       *int     `csv:"Parch,omitempty"`
	Fare        *float64 `csv:"Fare,omitempty"`
	Embarked    *string  `csv:"Embarked,omitempty"`
}

// Valid reports whether the record carries both the key and the
// outcome field. Rows failing this are excluded before textualization.
func (r Record) Valid() bool {
	return r.PassengerID != "" && r.Survived != nil
}

// Load reads the manifest CSV at path and returns the usable records
// in file order. A dataset that is unreadable or empty after filtering
// is a startup failure.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var rows []Record
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", path, err)
	}
	records := Filter(rows)
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s has no rows with both PassengerId and Survived set", path)
	}
	return records, nil
}

// Filter drops rows missing the key or outcome field, preserving order.
func Filter(rows []Record) []Record {
	records := make([]Record, 0, len(rows))
	for _, r := range rows {
		if r.Valid() {
			records = append(records, r)
		}
	}
	return records
}
