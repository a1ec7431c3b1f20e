package ingestion

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestDecodeContainerXML(t *testing.T) {
	payload := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<sms_data>
  <sms><body>first message</body></sms>
  <sms><body>second message</body></sms>
</sms_data>`)

	bodies, err := decodeContainer("backup.xml", payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(bodies))
	}
	if bodies[0] != "first message" || bodies[1] != "second message" {
		t.Fatalf("unexpected bodies: %v", bodies)
	}
}

func TestDecodeContainerXMLInlineText(t *testing.T) {
	payload := []byte(`<sms_data><sms>inline body text</sms></sms_data>`)

	bodies, err := decodeContainer("backup.xml", payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bodies) != 1 || bodies[0] != "inline body text" {
		t.Fatalf("unexpected bodies: %v", bodies)
	}
}

func TestDecodeContainerXMLPreservesEmptyBodies(t *testing.T) {
	payload := []byte(`<sms_data><sms><body></body></sms><sms><body>kept</body></sms></sms_data>`)

	bodies, err := decodeContainer("backup.xml", payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(bodies))
	}
	if bodies[0] != "" {
		t.Fatalf("expected empty first body, got %q", bodies[0])
	}
}

func TestDecodeContainerXMLWrongRoot(t *testing.T) {
	if _, err := decodeContainer("backup.xml", []byte(`<messages><sms><body>x</body></sms></messages>`)); err == nil {
		t.Fatalf("expected an error for a foreign root element")
	}
}

func TestDecodeContainerXMLNoMessages(t *testing.T) {
	_, err := decodeContainer("backup.xml", []byte(`<sms_data></sms_data>`))
	if !errors.Is(err, ErrInvalidStructure) {
		t.Fatalf("expected ErrInvalidStructure, got %v", err)
	}
}

func TestDecodeContainerCSV(t *testing.T) {
	payload := []byte("id,body\n1,first message\n2,second message\n")

	bodies, err := decodeContainer("export.csv", payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(bodies))
	}
	if bodies[0] != "first message" || bodies[1] != "second message" {
		t.Fatalf("unexpected bodies: %v", bodies)
	}
}

func TestDecodeContainerCSVNoHeader(t *testing.T) {
	bodies, err := decodeContainer("export.csv", []byte("only message\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bodies) != 1 || bodies[0] != "only message" {
		t.Fatalf("unexpected bodies: %v", bodies)
	}
}

func TestDecodeContainerXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, value := range []string{"body", "first message", "second message"} {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("failed to build cell name: %v", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			t.Fatalf("failed to set cell: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}

	bodies, err := decodeContainer("export.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(bodies))
	}
	if bodies[0] != "first message" || bodies[1] != "second message" {
		t.Fatalf("unexpected bodies: %v", bodies)
	}
}

func TestDecodeContainerXLSXEmptySheet(t *testing.T) {
	buf, err := excelize.NewFile().WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}

	if _, err := decodeContainer("export.xlsx", buf.Bytes()); !errors.Is(err, ErrInvalidStructure) {
		t.Fatalf("expected ErrInvalidStructure, got %v", err)
	}
}

func TestDecodeContainerUnsupportedFormat(t *testing.T) {
	_, err := decodeContainer("export.pdf", []byte("irrelevant"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
