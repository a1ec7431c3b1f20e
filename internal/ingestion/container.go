package ingestion

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned when an uploaded container is not supported.
	ErrUnsupportedFormat = errors.New("unsupported container format")

	// ErrInvalidStructure is returned when a container decodes but does not
	// hold the expected message collection.
	ErrInvalidStructure = errors.New("invalid container structure: expected sms_data root with sms children")

	byteOrderMark = []byte{0xEF, 0xBB, 0xBF}
)

type smsDocument struct {
	XMLName  xml.Name     `xml:"sms_data"`
	Messages []smsElement `xml:"sms"`
}

type smsElement struct {
	Body string `xml:"body"`
	Text string `xml:",chardata"`
}

// body returns the message text of one element. Exports either nest the text
// in a <body> child or inline it as the element's character data.
func (e smsElement) body() string {
	if body := strings.TrimSpace(e.Body); body != "" {
		return body
	}
	return strings.TrimSpace(e.Text)
}

// decodeContainer extracts the ordered message bodies from an uploaded
// container, chosen by file extension. Empty bodies are preserved so the
// pipeline can count them as skipped messages.
func decodeContainer(fileName string, payload []byte) ([]string, error) {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".xml", "":
		return decodeXML(payload)
	case ".csv":
		return decodeCSV(payload)
	case ".xlsx":
		return decodeExcel(payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func decodeXML(payload []byte) ([]string, error) {
	var doc smsDocument
	if err := xml.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode xml: %w", err)
	}
	if len(doc.Messages) == 0 {
		return nil, ErrInvalidStructure
	}

	bodies := make([]string, 0, len(doc.Messages))
	for _, element := range doc.Messages {
		bodies = append(bodies, element.body())
	}
	return bodies, nil
}

func decodeCSV(payload []byte) ([]string, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return bodiesFromRows(records)
}

func decodeExcel(payload []byte) ([]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrInvalidStructure
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}

	return bodiesFromRows(rows)
}

// bodiesFromRows treats tabular exports as one message per row, taken from a
// "body" column when the header names one and from the first column
// otherwise.
func bodiesFromRows(rows [][]string) ([]string, error) {
	if len(rows) == 0 {
		return nil, ErrInvalidStructure
	}

	bodyColumn := 0
	dataRows := rows
	for idx, header := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(header), "body") {
			bodyColumn = idx
			dataRows = rows[1:]
			break
		}
	}
	if len(dataRows) == 0 {
		return nil, ErrInvalidStructure
	}

	bodies := make([]string, 0, len(dataRows))
	for _, row := range dataRows {
		if bodyColumn < len(row) {
			bodies = append(bodies, strings.TrimSpace(row[bodyColumn]))
		} else {
			bodies = append(bodies, "")
		}
	}
	return bodies, nil
}
