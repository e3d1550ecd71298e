package form

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Sachintlgt/brd-admin-sub000/internal/dtos"
	"github.com/Sachintlgt/brd-admin-sub000/internal/files"
)

// ItemKind discriminates the three variants a reconciled item can be.
// Existing items originate server-side and can only ever transition into
// the deletion set; they never become New again.
type ItemKind int

const (
	ItemExisting ItemKind = iota
	ItemNewWithFile
	ItemNewNameOnly
)

// Item is one entry in a family's merged editable list. Key is a locally
// generated identity for UI bookkeeping and is never serialized.
type Item struct {
	Key      string
	Kind     ItemKind
	ID       string // existing only
	Name     string
	AssetURL string       // existing only
	File     files.Upload // new-with-file only
}

// Family describes one reconciled entity family's rules.
type Family struct {
	Name          string
	AllowNameOnly bool
	FileCategory  files.Category
}

var (
	FamilyAmenities    = Family{Name: "amenities", AllowNameOnly: true, FileCategory: files.CategoryIcon}
	FamilyCertificates = Family{Name: "certificates", FileCategory: files.CategoryDocument}
	FamilyFloorPlans   = Family{Name: "floorPlans", FileCategory: files.CategoryImage}
	FamilyDocuments    = Family{Name: "documents", FileCategory: files.CategoryDocument}
	FamilyImages       = Family{Name: "propertyImages", FileCategory: files.CategoryImage}
	FamilyVideos       = Family{Name: "propertyVideos", FileCategory: files.CategoryVideo}
)

// ErrNameOnlyNotAllowed is returned when a text-only item is added to a
// family that requires a file per item.
var ErrNameOnlyNotAllowed = errors.New("family does not accept name-only items")

// Fragment is a family's slice of the outgoing payload, recomputed in full
// from current state on every call.
type Fragment struct {
	Names       string
	Records     []dtos.NamedRecord
	DeletionIDs []string
	Files       []files.Upload
}

// ItemList merges a family's server-origin items with locally added ones
// into a single ordered editable list, and tracks removals of existing
// items in a separate deletion set.
type ItemList struct {
	family     Family
	existing   []Item // fetch order
	added      []Item // add order
	deletedIDs []string
	newKey     func() string
}

// NewItemList seeds a list from the sub-assets a detail fetch returned.
// For a create session pass nil.
func NewItemList(family Family, fetched []dtos.SubAsset) *ItemList {
	l := &ItemList{family: family, newKey: uuid.NewString}
	for _, a := range fetched {
		l.existing = append(l.existing, Item{
			Key:      l.newKey(),
			Kind:     ItemExisting,
			ID:       a.ID,
			Name:     a.Name,
			AssetURL: a.URL,
		})
	}
	return l
}

func (l *ItemList) Family() Family { return l.family }

// AddFile appends a new file-backed item and returns its local key.
func (l *ItemList) AddFile(name string, up files.Upload) string {
	item := Item{Key: l.newKey(), Kind: ItemNewWithFile, Name: name, File: up}
	l.added = append(l.added, item)
	return item.Key
}

// AddName appends a new text-only item (amenities only).
func (l *ItemList) AddName(name string) (string, error) {
	if !l.family.AllowNameOnly {
		return "", ErrNameOnlyNotAllowed
	}
	item := Item{Key: l.newKey(), Kind: ItemNewNameOnly, Name: name}
	l.added = append(l.added, item)
	return item.Key, nil
}

// Rename updates an item's name in place, whatever its variant.
func (l *ItemList) Rename(key, name string) bool {
	for i := range l.existing {
		if l.existing[i].Key == key {
			l.existing[i].Name = name
			return true
		}
	}
	for i := range l.added {
		if l.added[i].Key == key {
			l.added[i].Name = name
			return true
		}
	}
	return false
}

// Remove takes an item out of the visible list. An existing item's id
// moves into the deletion set (one-way); a new item simply disappears,
// file included, so an orphaned upload is never re-sent.
func (l *ItemList) Remove(key string) bool {
	for i := range l.existing {
		if l.existing[i].Key == key {
			l.deletedIDs = append(l.deletedIDs, l.existing[i].ID)
			l.existing = append(l.existing[:i], l.existing[i+1:]...)
			return true
		}
	}
	for i := range l.added {
		if l.added[i].Key == key {
			l.added = append(l.added[:i], l.added[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns the visible list: existing items in fetch order, then new
// items in add order.
func (l *ItemList) Items() []Item {
	out := make([]Item, 0, len(l.existing)+len(l.added))
	out = append(out, l.existing...)
	out = append(out, l.added...)
	return out
}

// Files returns the new uploads in add order.
func (l *ItemList) Files() []files.Upload {
	var out []files.Upload
	for _, it := range l.added {
		if it.Kind == ItemNewWithFile {
			out = append(out, it.File)
		}
	}
	return out
}

// DeletedIDs returns the ids of existing items removed this session.
func (l *ItemList) DeletedIDs() []string {
	out := make([]string, len(l.deletedIDs))
	copy(out, l.deletedIDs)
	return out
}

// Fragment recomputes the family's submission slice from current state.
// Blank-named items stay visible in Items() but are excluded here; the
// validation schema decides whether that blocks the submit.
func (l *ItemList) Fragment() Fragment {
	f := Fragment{
		DeletionIDs: l.DeletedIDs(),
		Files:       l.Files(),
	}
	var names []string
	order := 0
	for _, it := range l.Items() {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}
		names = append(names, name)
		f.Records = append(f.Records, dtos.NamedRecord{Name: name, DisplayOrder: order})
		order++
	}
	f.Names = strings.Join(names, ", ")
	return f
}
