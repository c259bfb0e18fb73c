package dataset

import (
	"strings"
	"testing"
	"time"
)

func TestParseDate_DayFirst(t *testing.T) {
	got, err := ParseDate("05/01/2023", true)
	if err != nil {
		t.Fatalf("ParseDate() failed: %v", err)
	}
	want := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate() = %v, want %v", got, want)
	}
}

func TestParseDate_ISO(t *testing.T) {
	got, err := ParseDate("2023-01-05", false)
	if err != nil {
		t.Fatalf("ParseDate() failed: %v", err)
	}
	want := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate() = %v, want %v", got, want)
	}
}

func TestParseDate_RoundTrip(t *testing.T) {
	for _, dayFirst := range []bool{true, false} {
		for _, raw := range []string{"01/01/2023", "28/02/2023", "31/12/2023"} {
			if !dayFirst {
				parsed, err := ParseDate(raw, true)
				if err != nil {
					t.Fatal(err)
				}
				raw = FormatDate(parsed, false)
			}

			first, err := ParseDate(raw, dayFirst)
			if err != nil {
				t.Fatalf("ParseDate(%q, %v) failed: %v", raw, dayFirst, err)
			}
			again, err := ParseDate(FormatDate(first, dayFirst), dayFirst)
			if err != nil {
				t.Fatalf("reparse of %q failed: %v", raw, err)
			}
			if !first.Equal(again) {
				t.Errorf("round trip of %q changed %v to %v", raw, first, again)
			}
		}
	}
}

func TestParseDate_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		raw      string
		dayFirst bool
	}{
		{"32/01/2023", true},  // no 32nd day
		{"30/02/2023", true},  // February is short
		{"01/13/2023", true},  // month 13 under day-first
		{"2023-02-30", false}, // ISO with bad day
		{"not-a-date", true},
	}

	for _, tt := range tests {
		if _, err := ParseDate(tt.raw, tt.dayFirst); err == nil {
			t.Errorf("ParseDate(%q, dayFirst=%v) should reject, got nil error", tt.raw, tt.dayFirst)
		}
	}
}

const testHeader = "transaction_id,transaction_date,transaction_time,transaction_qty,unit_price,store_id,store_location,product_id,product_category,product_type,product_detail,Size"

func testColumnIndex(t *testing.T) map[string]int {
	t.Helper()
	idx, err := columnIndex(strings.Split(testHeader, ","))
	if err != nil {
		t.Fatalf("columnIndex() failed: %v", err)
	}
	return idx
}

func TestColumnIndex_MissingColumn(t *testing.T) {
	header := strings.Replace(testHeader, "unit_price", "unitprice", 1)
	if _, err := columnIndex(strings.Split(header, ",")); err == nil {
		t.Error("columnIndex() should reject a header without unit_price")
	}
}

func TestParseRecord(t *testing.T) {
	colIdx := testColumnIndex(t)
	row := "114331,05/01/2023,08:30:00,2,3.50,5,Lower Manhattan,32,Coffee,Gourmet brewed coffee,Ethiopia Rg,Regular"

	tx, err := parseRecord(strings.Split(row, ","), colIdx, true)
	if err != nil {
		t.Fatalf("parseRecord() failed: %v", err)
	}

	if tx.TransactionID != "114331" {
		t.Errorf("TransactionID = %q, want 114331", tx.TransactionID)
	}
	want := time.Date(2023, 1, 5, 8, 30, 0, 0, time.UTC)
	if !tx.DateTime.Equal(want) {
		t.Errorf("DateTime = %v, want %v", tx.DateTime, want)
	}
	if tx.Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", tx.Quantity)
	}
	if tx.UnitPrice.String() != "3.5" {
		t.Errorf("UnitPrice = %s, want 3.5", tx.UnitPrice)
	}
	if got := tx.TotalBill.InexactFloat64(); got != 7.0 {
		t.Errorf("TotalBill = %v, want 7.0", got)
	}
	if tx.Hour != 8 || tx.TimePeriod != PeriodMorning {
		t.Errorf("derived Hour/TimePeriod = %d/%s, want 8/Morning", tx.Hour, tx.TimePeriod)
	}
}

func TestParseRecord_Malformed(t *testing.T) {
	colIdx := testColumnIndex(t)

	tests := []struct {
		name string
		row  string
	}{
		{"too few fields", "114331,05/01/2023,08:30:00"},
		{"bad date", "1,2023/01/05,08:30:00,2,3.50,5,LM,32,Coffee,Brewed,Ethiopia,Regular"},
		{"bad time", "1,05/01/2023,8h30,2,3.50,5,LM,32,Coffee,Brewed,Ethiopia,Regular"},
		{"non-numeric qty", "1,05/01/2023,08:30:00,two,3.50,5,LM,32,Coffee,Brewed,Ethiopia,Regular"},
		{"negative qty", "1,05/01/2023,08:30:00,-1,3.50,5,LM,32,Coffee,Brewed,Ethiopia,Regular"},
		{"non-numeric price", "1,05/01/2023,08:30:00,2,free,5,LM,32,Coffee,Brewed,Ethiopia,Regular"},
		{"negative price", "1,05/01/2023,08:30:00,2,-3.50,5,LM,32,Coffee,Brewed,Ethiopia,Regular"},
		{"empty transaction id", ",05/01/2023,08:30:00,2,3.50,5,LM,32,Coffee,Brewed,Ethiopia,Regular"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseRecord(strings.Split(tt.row, ","), colIdx, true); err == nil {
				t.Error("parseRecord() should reject the row")
			}
		})
	}
}
