package restable_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"dmglicense/internal/charset"
	"dmglicense/internal/language"
	"dmglicense/internal/license"
	"dmglicense/internal/restable"
)

func assembled(body string, ids ...int) *license.AssembledLicense {
	return &license.AssembledLicense{
		Body:        license.Body{Type: license.PlainText, Data: []byte(body)},
		Labels:      []byte{0, 6, 0, 0, 0, 0, 0, 0},
		LanguageIDs: ids,
	}
}

func TestSingleEnglishLPic(t *testing.T) {
	table, err := restable.Build([]*license.AssembledLicense{assembled("hi", 0)}, 0, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []byte{0, 0, 0, 1, 0, 0, 0, 0, 0, 0}
	if got := table.LPic(); !bytes.Equal(got, want) {
		t.Fatalf("LPic = % x, want % x", got, want)
	}
}

func TestBuildMappingOrderAndFlags(t *testing.T) {
	table, err := restable.Build([]*license.AssembledLicense{
		assembled("a", 3, 0),
		assembled("b", 14),
	}, 14, language.Default())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []restable.Mapping{
		{LanguageID: 3, Slot: 0},
		{LanguageID: 0, Slot: 0},
		{LanguageID: 14, Slot: 1, DoubleByte: true},
	}
	if len(table.Mappings) != len(want) {
		t.Fatalf("unexpected mappings %+v", table.Mappings)
	}
	for i := range want {
		if table.Mappings[i] != want[i] {
			t.Fatalf("mapping %d = %+v, want %+v", i, table.Mappings[i], want[i])
		}
	}
	decoded, err := restable.DecodeLPic(table.LPic())
	if err != nil {
		t.Fatalf("DecodeLPic: %v", err)
	}
	if decoded.DefaultLanguageID != 14 || len(decoded.Mappings) != 3 || decoded.Mappings[2] != want[2] {
		t.Fatalf("unexpected decoded index %+v", decoded)
	}
	if slot, ok := table.SlotOf(0); !ok || slot != 0 {
		t.Fatalf("SlotOf(0) = %d, %v", slot, ok)
	}
}

func TestBuildRejectsBrokenInvariants(t *testing.T) {
	tests := []struct {
		name     string
		licenses []*license.AssembledLicense
		def      int
		want     string
	}{
		{"duplicate language", []*license.AssembledLicense{assembled("a", 0), assembled("b", 0)}, 0, "mapped to slots 0 and 1"},
		{"identical content", []*license.AssembledLicense{assembled("a", 0), assembled("a", 1)}, 0, "identical content"},
		{"missing default", []*license.AssembledLicense{assembled("a", 0)}, 3, "default language 3"},
		{"no languages", []*license.AssembledLicense{assembled("a", 0), assembled("b")}, 0, "no languages"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := restable.Build(tt.licenses, tt.def, nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q, got %v", tt.want, err)
			}
		})
	}
	if _, err := restable.Build(nil, 0, nil); !errors.Is(err, restable.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestDecodeLPicRejectsTruncatedData(t *testing.T) {
	if _, err := restable.DecodeLPic([]byte{0, 0, 0, 2, 0, 0, 0, 0, 0, 0}); err == nil {
		t.Fatal("expected length error")
	}
	if _, err := restable.DecodeLPic([]byte{0}); err == nil {
		t.Fatal("expected header error")
	}
}

func TestFromAssembly(t *testing.T) {
	a := license.NewAssembler(language.Default())
	res, err := a.Assemble(context.Background(), &license.Specification{
		Bodies: []license.BodyEntry{
			{Languages: []language.Specifier{language.Tag("fr-FR")}, Text: charset.Text("Licence")},
			{Languages: []language.Specifier{language.Tag("en-US"), language.Tag("en-GB")}, Text: charset.Text("License")},
		},
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	table, err := restable.FromResult(res, language.Default())
	if err != nil {
		t.Fatalf("FromResult: %v", err)
	}
	got := table.LPic()
	want := []byte{
		0, 1, 0, 3,
		0, 1, 0, 0, 0, 0,
		0, 0, 0, 1, 0, 0,
		0, 2, 0, 1, 0, 0,
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("LPic = % x, want % x", got, want)
	}
}
