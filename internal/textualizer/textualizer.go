package textualizer

import (
	"fmt"
	"strconv"
	"strings"

	"tablerag/internal/dataset"
	"tablerag/internal/domain"
)

// Sentinel is the literal substituted for missing attribute values.
const Sentinel = "not specified"

// Textualize converts one record into a self-contained document
// following a fixed template. Deterministic: the same record always
// yields the same text. Records missing key or outcome are filtered
// upstream and must not be passed in.
func Textualize(r dataset.Record) domain.Document {
	var b strings.Builder
	fmt.Fprintf(&b, "Passenger %s.", r.PassengerID)
	fmt.Fprintf(&b, " Name: %s.", strValue(r.Name))
	fmt.Fprintf(&b, " Ticket class: %s.", intValue(r.Pclass))
	fmt.Fprintf(&b, " Sex: %s.", strValue(r.Sex))
	fmt.Fprintf(&b, " Age: %s.", floatValue(r.Age))
	fmt.Fprintf(&b, " Siblings or spouses aboard: %s.", intValue(r.SibSp))
	fmt.Fprintf(&b, " Parents or children aboard: %s.", intValue(r.Parch))
	fmt.Fprintf(&b, " Fare: %s.", floatValue(r.Fare))
	fmt.Fprintf(&b, " Port of embarkation: %s.", strValue(r.Embarked))
	fmt.Fprintf(&b, " Survived: %s.", intValue(r.Survived))
	return domain.Document{RecordID: r.PassengerID, Text: b.String()}
}

// TextualizeAll converts each record in order, one document per record.
func TextualizeAll(records []dataset.Record) []domain.Document {
	documents := make([]domain.Document, len(records))
	for i, r := range records {
		documents[i] = Textualize(r)
	}
	return documents
}

func strValue(p *string) string {
	if p == nil || *p == "" {
		return Sentinel
	}
	return *p
}

func intValue(p *int) string {
	if p == nil {
		return Sentinel
	}
	return strconv.Itoa(*p)
}

func floatValue(p *float64) string {
	if p == nil {
		return Sentinel
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
