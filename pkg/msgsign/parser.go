package msgsign

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Record is a signed message claim as it appears in an input file: an
// address, the message and its base64 compact signature.
type Record struct {
	Address   string `json:"address"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

// RecordParser defines the interface for loading records from a source.
type RecordParser interface {
	// ParseRecords reads records from a source and returns them.
	ParseRecords(source string) ([]*Record, error)
}

// JSONParser parses records from JSON files.
type JSONParser struct {
	AddressField   string // Field name for the address (default: "address")
	MessageField   string // Field name for the message (default: "message")
	SignatureField string // Field name for the signature (default: "signature")
}

// ParseRecords parses records from a JSON file.
//
// Expected format:
//
//	[
//	  {"address": "1...", "message": "...", "signature": "H..."}
//	]
func (p *JSONParser) ParseRecords(jsonFile string) ([]*Record, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	return p.Decode(file)
}

// Decode parses records from a JSON stream.
func (p *JSONParser) Decode(r io.Reader) ([]*Record, error) {
	var items []map[string]interface{}
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	addressField := orDefault(p.AddressField, "address")
	messageField := orDefault(p.MessageField, "message")
	signatureField := orDefault(p.SignatureField, "signature")

	records := make([]*Record, 0, len(items))
	for i, item := range items {
		address, err := stringField(item, addressField)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		message, err := stringField(item, messageField)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		signature, err := stringField(item, signatureField)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		records = append(records, &Record{Address: address, Message: message, Signature: signature})
	}

	return records, nil
}

// CSVParser parses records from CSV files with a header row.
type CSVParser struct {
	AddressCol   string // Column name for the address (default: "address")
	MessageCol   string // Column name for the message (default: "message")
	SignatureCol string // Column name for the signature (default: "signature")
}

// ParseRecords parses records from a CSV file.
func (p *CSVParser) ParseRecords(csvFile string) ([]*Record, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Decode(file)
}

// Decode parses records from a CSV stream.
func (p *CSVParser) Decode(r io.Reader) ([]*Record, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	addressCol := orDefault(p.AddressCol, "address")
	messageCol := orDefault(p.MessageCol, "message")
	signatureCol := orDefault(p.SignatureCol, "signature")

	addressIdx, messageIdx, signatureIdx := -1, -1, -1
	for i, col := range header {
		switch col {
		case addressCol:
			addressIdx = i
		case messageCol:
			messageIdx = i
		case signatureCol:
			signatureIdx = i
		}
	}

	if addressIdx == -1 || messageIdx == -1 || signatureIdx == -1 {
		return nil, fmt.Errorf("missing required columns: %s, %s or %s", addressCol, messageCol, signatureCol)
	}

	records := make([]*Record, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		records = append(records, &Record{
			Address:   row[addressIdx],
			Message:   row[messageIdx],
			Signature: row[signatureIdx],
		})
	}

	return records, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// stringField extracts a string value. Messages are compared byte for byte,
// so no other JSON type is coerced into a string.
func stringField(item map[string]interface{}, field string) (string, error) {
	val, ok := item[field]
	if !ok {
		return "", fmt.Errorf("missing %s field", field)
	}
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s field must be a string, got %T", field, val)
	}
	return s, nil
}
