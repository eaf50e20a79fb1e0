// Package restable lays assembled licenses out as an ordered resource table
// and encodes the LPic index the installer uses to pick a license for the
// active system language.
package restable

import (
	"encoding/binary"
	"errors"
	"fmt"

	"dmglicense/internal/errlist"
	"dmglicense/internal/language"
	"dmglicense/internal/license"
)

// ErrEmpty is returned when there is nothing to put in a table.
var ErrEmpty = errors.New("resource table would be empty")

// Mapping routes one language to a slot.
type Mapping struct {
	LanguageID int
	Slot       int
	DoubleByte bool
}

// Table is the final resource layout. Slot i holds Licenses[i].
type Table struct {
	Licenses          []*license.AssembledLicense
	Mappings          []Mapping
	DefaultLanguageID int
}

// Build assigns slots in the order licenses are given and maps every
// language of every license to its slot.
func Build(licenses []*license.AssembledLicense, defaultID int, catalog *language.Catalog) (*Table, error) {
	if len(licenses) == 0 {
		return nil, ErrEmpty
	}
	if catalog == nil {
		catalog = language.Default()
	}
	t := &Table{Licenses: licenses, DefaultLanguageID: defaultID}
	var errs errlist.Buffer
	owner := make(map[int]int)
	for slot, lic := range licenses {
		if len(lic.LanguageIDs) == 0 {
			errs.Add(fmt.Errorf("license in slot %d has no languages", slot))
		}
		for prev := range slot {
			if licenses[prev].Equal(lic) {
				errs.Add(fmt.Errorf("slots %d and %d hold identical content", prev, slot))
			}
		}
		for _, id := range lic.LanguageIDs {
			if other, dup := owner[id]; dup {
				errs.Add(fmt.Errorf("language %d is mapped to slots %d and %d", id, other, slot))
				continue
			}
			owner[id] = slot
			lang, ok := catalog.ByID(id)
			if !ok {
				errs.Add(&language.NoSuchLanguageError{Specifiers: []language.Specifier{language.ID(id)}})
				continue
			}
			t.Mappings = append(t.Mappings, Mapping{LanguageID: id, Slot: slot, DoubleByte: lang.DoubleByte})
		}
	}
	if _, ok := owner[defaultID]; !ok {
		errs.Add(fmt.Errorf("default language %d has no license", defaultID))
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// FromResult builds the table for an assembly result.
func FromResult(res *license.Result, catalog *language.Catalog) (*Table, error) {
	if res == nil {
		return nil, ErrEmpty
	}
	return Build(res.InOrder, res.DefaultLanguageID, catalog)
}

// SlotOf returns the slot serving a language.
func (t *Table) SlotOf(languageID int) (int, bool) {
	for _, m := range t.Mappings {
		if m.LanguageID == languageID {
			return m.Slot, true
		}
	}
	return 0, false
}

// LPic encodes the index: default language and mapping count, then one
// (language, slot, double-byte) record per mapping, all big-endian 16-bit.
func (t *Table) LPic() []byte {
	out := make([]byte, 0, 4+6*len(t.Mappings))
	out = binary.BigEndian.AppendUint16(out, uint16(int16(t.DefaultLanguageID)))
	out = binary.BigEndian.AppendUint16(out, uint16(len(t.Mappings)))
	for _, m := range t.Mappings {
		var flag uint16
		if m.DoubleByte {
			flag = 1
		}
		out = binary.BigEndian.AppendUint16(out, uint16(int16(m.LanguageID)))
		out = binary.BigEndian.AppendUint16(out, uint16(int16(m.Slot)))
		out = binary.BigEndian.AppendUint16(out, flag)
	}
	return out
}

// LPic is a decoded index.
type LPic struct {
	DefaultLanguageID int
	Mappings          []Mapping
}

// DecodeLPic parses an index produced by Table.LPic.
func DecodeLPic(data []byte) (LPic, error) {
	var out LPic
	if len(data) < 4 {
		return out, fmt.Errorf("LPic data is %d bytes; the header alone needs 4", len(data))
	}
	out.DefaultLanguageID = int(int16(binary.BigEndian.Uint16(data[0:2])))
	count := int(binary.BigEndian.Uint16(data[2:4]))
	if want := 4 + 6*count; len(data) != want {
		return out, fmt.Errorf("LPic declares %d entries and should be %d bytes, but is %d", count, want, len(data))
	}
	for i := range count {
		rec := data[4+6*i:]
		out.Mappings = append(out.Mappings, Mapping{
			LanguageID: int(int16(binary.BigEndian.Uint16(rec[0:2]))),
			Slot:       int(int16(binary.BigEndian.Uint16(rec[2:4]))),
			DoubleByte: binary.BigEndian.Uint16(rec[4:6]) != 0,
		})
	}
	return out, nil
}
