// Package udif renders a resource table as the resource-fork property list
// that `hdiutil udifrez -xml` merges into a disk image.
package udif

import (
	"bytes"
	"fmt"
	"strconv"

	"howett.net/plist"

	"dmglicense/internal/language"
	"dmglicense/internal/restable"
)

// BaseResourceID is the resource ID of slot 0 and of the LPic index.
const BaseResourceID = 5000

const defaultAttributes = "0x0000"

// Resource types written to the image.
const (
	TypeIndex  = "LPic"
	TypeLabels = "STR#"
	TypeText   = "TEXT"
	TypeRTF    = "RTF "
)

// Resource is one entry of a resource-fork plist.
type Resource struct {
	Attributes string `plist:"Attributes"`
	Data       []byte `plist:"Data"`
	ID         string `plist:"ID"`
	Name       string `plist:"Name"`
}

// ResourceID returns the numeric ID of r.
func (r Resource) ResourceID() (int, error) {
	return strconv.Atoi(r.ID)
}

// Fork maps resource types to their resources.
type Fork map[string][]Resource

// Resources lays out t: one label and one body resource per slot, numbered
// from BaseResourceID, plus the LPic index. Resources are named after the
// first language of their slot.
func Resources(t *restable.Table, catalog *language.Catalog) Fork {
	if catalog == nil {
		catalog = language.Default()
	}
	fork := Fork{
		TypeIndex:  nil,
		TypeLabels: nil,
	}
	for slot, lic := range t.Licenses {
		id := strconv.Itoa(BaseResourceID + slot)
		name := slotName(lic.LanguageIDs, catalog)
		fork[TypeLabels] = append(fork[TypeLabels], Resource{
			Attributes: defaultAttributes,
			Data:       lic.Labels,
			ID:         id,
			Name:       name,
		})
		bodyType := lic.Body.Type.ResourceType()
		fork[bodyType] = append(fork[bodyType], Resource{
			Attributes: defaultAttributes,
			Data:       lic.Body.Data,
			ID:         id,
			Name:       name + " SLA",
		})
	}
	fork[TypeIndex] = []Resource{{
		Attributes: defaultAttributes,
		Data:       t.LPic(),
		ID:         strconv.Itoa(BaseResourceID),
		Name:       "",
	}}
	return fork
}

func slotName(ids []int, catalog *language.Catalog) string {
	if len(ids) == 0 {
		return ""
	}
	if l, ok := catalog.ByID(ids[0]); ok {
		return l.EnglishName
	}
	return strconv.Itoa(ids[0])
}

// Marshal encodes fork as an XML property list.
func Marshal(fork Fork) ([]byte, error) {
	data, err := plist.MarshalIndent(fork, plist.XMLFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf("encode resource plist: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a resource-fork property list in any plist format.
func Unmarshal(data []byte) (Fork, error) {
	var fork Fork
	if _, err := plist.Unmarshal(data, &fork); err != nil {
		return nil, fmt.Errorf("decode resource plist: %w", err)
	}
	return fork, nil
}

// Find returns the resource of type typ with the given ID.
func (f Fork) Find(typ string, id int) (Resource, bool) {
	want := strconv.Itoa(id)
	for _, r := range f[typ] {
		if r.ID == want {
			return r, true
		}
	}
	return Resource{}, false
}

// Equal reports whether two forks hold the same resources in the same order.
func (f Fork) Equal(o Fork) bool {
	if len(f) != len(o) {
		return false
	}
	for typ, list := range f {
		other, ok := o[typ]
		if !ok || len(other) != len(list) {
			return false
		}
		for i := range list {
			a, b := list[i], other[i]
			if a.ID != b.ID || a.Name != b.Name || a.Attributes != b.Attributes || !bytes.Equal(a.Data, b.Data) {
				return false
			}
		}
	}
	return true
}
