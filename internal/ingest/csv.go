package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/freedalab/ticketflow/internal/domain"
)

// Source header vocabulary of the tabular exports, mapped one-to-one onto
// canonical field names.
var columnMap = map[string]string{
	"TICKET":                  "id",
	"Client":                  "client",
	"Motif":                   "motif",
	"Statut":                  "status",
	"Gravité":                 "priority",
	"Canal":                   "channel",
	"Date":                    "date",
	"Agent":                   "agent",
	"Historique des échanges": "history",
	"Recommandation":          "recommendation",
	"Sentiment":               "sentiment",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decode negotiates the file encoding: UTF-8, then UTF-8 with signature,
// then a Latin-1 fallback, stopping at first success.
func decode(data []byte) (string, error) {
	if utf8.Valid(data) && !bytes.HasPrefix(data, utf8BOM) {
		return string(data), nil
	}
	if bytes.HasPrefix(data, utf8BOM) {
		trimmed := bytes.TrimPrefix(data, utf8BOM)
		if utf8.Valid(trimmed) {
			return string(trimmed), nil
		}
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode latin-1: %w", err)
	}
	return string(decoded), nil
}

// parseRows reads a decoded CSV document into canonical-shaped rows. Any
// required column absent from the file is filled with an empty string;
// rows without an identifier get a synthetic sequential one. No field
// normalization happens here: values stay raw until read time.
func parseRows(content string) ([]domain.CSVRow, error) {
	reader := csv.NewReader(strings.NewReader(content))
	all, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}

	header := all[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		if canonical, ok := columnMap[strings.TrimSpace(name)]; ok {
			index[canonical] = i
		}
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	rows := make([]domain.CSVRow, 0, len(all)-1)
	for n, raw := range all[1:] {
		row := domain.CSVRow{
			ID:             field(raw, "id"),
			Client:         field(raw, "client"),
			Motif:          field(raw, "motif"),
			Status:         field(raw, "status"),
			Priority:       field(raw, "priority"),
			Channel:        field(raw, "channel"),
			Date:           field(raw, "date"),
			Agent:          field(raw, "agent"),
			History:        field(raw, "history"),
			Recommendation: field(raw, "recommendation"),
			Sentiment:      field(raw, "sentiment"),
		}
		if row.ID == "" {
			row.ID = fmt.Sprintf("T-%d", n)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// toLocalRecord maps a parsed row onto the persisted store shape.
func toLocalRecord(row domain.CSVRow) domain.LocalRecord {
	return domain.LocalRecord{
		ID:             row.ID,
		Client:         row.Client,
		Motif:          row.Motif,
		Status:         row.Status,
		Priority:       row.Priority,
		Channel:        row.Channel,
		Date:           row.Date,
		Agent:          row.Agent,
		History:        row.History,
		Recommendation: row.Recommendation,
		Sentiment:      row.Sentiment,
	}
}
