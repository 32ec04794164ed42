package schema

import (
	"errors"
	"testing"

	"roster/src/internal/table"
)

func TestDefaultRenamesIsCopy(t *testing.T) {
	m := DefaultRenames()
	if m["Title Description"] != Title || m["Serial"] != Badge {
		t.Fatalf("unexpected default renames: %v", m)
	}
	m["Name"] = "changed"
	if DefaultRenames()["Name"] != FullName {
		t.Fatalf("DefaultRenames must return a copy")
	}
}

func TestValidate(t *testing.T) {
	r := Record{Badge: "1234", FullName: "Smith, John", Date: "2023-01-01", Suffix: "Jr"}
	if err := r.Validate(); err != nil {
		t.Fatalf("valid record: %v", err)
	}
	r.Suffix = "JR"
	if err := r.Validate(); err == nil {
		t.Fatalf("expected suffix error")
	}
	r.Suffix = ""
	r.Date = "01/01/2023"
	if err := r.Validate(); err == nil {
		t.Fatalf("expected date error")
	}
	if err := (&Record{Date: "2023-01-01"}).Validate(); err == nil {
		t.Fatalf("expected identity error")
	}
}

func TestDecode(t *testing.T) {
	tb := table.New(Badge, FullName, LastName, Date)
	_ = tb.AddRow("1234", "Smith, John", "Smith", "2023-01-01")
	recs, err := Decode(tb)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 1 || recs[0].LastName != "Smith" || recs[0].Unit != "" {
		t.Fatalf("decode mismatch: %+v", recs)
	}
	if _, err := Decode(table.New(Badge)); !errors.Is(err, table.ErrSchema) {
		t.Fatalf("want ErrSchema without date column, got %v", err)
	}
	_ = tb.AddRow("9", "Doe, Jane", "Doe", "yesterday")
	if _, err := Decode(tb); err == nil {
		t.Fatalf("expected row validation error")
	}
}

func TestEncodeDecode(t *testing.T) {
	recs := []Record{{Badge: "2", FullName: "Smith, John K. Jr.", FirstName: "John", MiddleName: "K", LastName: "Smith", Suffix: "Jr", Date: "2023-01-01"}}
	tb := Encode(recs)
	if len(tb.Columns) != len(Columns) || tb.Get(0, Suffix) != "Jr" || tb.Get(0, Title) != "" {
		t.Fatalf("encode mismatch: %v %v", tb.Columns, tb.Rows)
	}
	back, err := Decode(tb)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(back) != 1 || back[0] != recs[0] {
		t.Fatalf("decode(encode) mismatch: %+v", back)
	}
}
