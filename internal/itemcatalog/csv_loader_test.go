package itemcatalog

import (
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	input := `serial_number,crop_code,crop_name,language,project
1,RICE001,Basmati Rice,hi,Sample
2,WHEAT001,Wheat,hi,Sample
7,CORN001,Corn,hi,Sample
`
	items, err := ParseCSV(strings.NewReader(input), "en")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("parsed %d items, want 3", len(items))
	}
	if items[0].Label != "Basmati Rice" || items[0].Code != "RICE001" || items[0].SerialNumber != 1 {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[0].Language != "hi" {
		t.Errorf("item 0 language = %q, want hi", items[0].Language)
	}
	// Serial numbers need not be contiguous.
	if items[2].SerialNumber != 7 {
		t.Errorf("item 2 serial = %d, want 7", items[2].SerialNumber)
	}
}

func TestParseCSVHeaderAliases(t *testing.T) {
	input := "sno,code,name,lang\n1,C1,Wheat,Hindi\n"
	items, err := ParseCSV(strings.NewReader(input), "en")
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Label != "Wheat" || items[0].Code != "C1" {
		t.Errorf("item = %+v", items[0])
	}
	// Full language names normalize to the short code.
	if items[0].Language != "hi" {
		t.Errorf("language = %q, want hi", items[0].Language)
	}
}

func TestParseCSVDefaultLanguage(t *testing.T) {
	input := "crop_name\nWheat\nCorn\n"
	items, err := ParseCSV(strings.NewReader(input), "ta")
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range items {
		if item.Language != "ta" {
			t.Errorf("item %q language = %q, want ta", item.Label, item.Language)
		}
	}
	if items[0].SerialNumber != 1 || items[1].SerialNumber != 2 {
		t.Errorf("generated serials wrong: %+v", items)
	}
}

func TestParseCSVRejectsEmptyLabel(t *testing.T) {
	input := "crop_name\nWheat\n   \n"
	if _, err := ParseCSV(strings.NewReader(input), "en"); err == nil {
		t.Error("expected an error for an empty label row")
	}
}

func TestParseCSVMissingLabelColumn(t *testing.T) {
	input := "serial_number,project\n1,Sample\n"
	if _, err := ParseCSV(strings.NewReader(input), "en"); err == nil {
		t.Error("expected an error for a missing label column")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hi", "hi"},
		{"Hindi", "hi"},
		{"HINDI", "hi"},
		{" en ", "en"},
		{"Tamil", "ta"},
	}
	for _, c := range cases {
		got, err := NormalizeLanguage(c.in)
		if err != nil {
			t.Errorf("NormalizeLanguage(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	if _, err := NormalizeLanguage("klingon"); err == nil {
		t.Error("expected an error for an unsupported language")
	}
	if _, err := NormalizeLanguage(""); err == nil {
		t.Error("expected an error for an empty language")
	}
}
