package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sachintlgt/brd-admin-sub000/internal/dtos"
	"github.com/Sachintlgt/brd-admin-sub000/internal/files"
)

func upload(name string) files.Upload {
	return files.Upload{Name: name, ContentType: "image/jpeg", Content: []byte("data")}
}

func TestItemListSeedsFromFetch(t *testing.T) {
	l := NewItemList(FamilyCertificates, []dtos.SubAsset{
		{ID: "c1", Name: "RERA", URL: "https://cdn/rera.pdf"},
		{ID: "c2", Name: "OC", URL: "https://cdn/oc.pdf"},
	})

	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, ItemExisting, items[0].Kind)
	assert.Equal(t, "c1", items[0].ID)
	assert.Equal(t, "RERA", items[0].Name)
	assert.NotEmpty(t, items[0].Key)
	assert.NotEqual(t, items[0].Key, items[1].Key)
	assert.Empty(t, l.DeletedIDs())
}

func TestRemoveExistingMovesIDToDeletionSet(t *testing.T) {
	l := NewItemList(FamilyCertificates, []dtos.SubAsset{
		{ID: "c1", Name: "RERA"},
		{ID: "c2", Name: "OC"},
	})
	key := l.Items()[0].Key

	require.True(t, l.Remove(key))

	assert.Equal(t, []string{"c1"}, l.DeletedIDs())
	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "c2", items[0].ID)
}

func TestDeletionSetIsOneWay(t *testing.T) {
	l := NewItemList(FamilyCertificates, []dtos.SubAsset{{ID: "c1", Name: "RERA"}})
	key := l.Items()[0].Key
	require.True(t, l.Remove(key))

	// Removing the same key again is a no-op; the deletion set never shrinks.
	assert.False(t, l.Remove(key))
	assert.Equal(t, []string{"c1"}, l.DeletedIDs())

	// Adding a fresh item with the same name does not resurrect the old id.
	l.AddFile("RERA", upload("rera.pdf"))
	assert.Equal(t, []string{"c1"}, l.DeletedIDs())
}

func TestRemoveNewItemDropsFile(t *testing.T) {
	l := NewItemList(FamilyImages, nil)
	key := l.AddFile("front", upload("front.jpg"))

	require.Len(t, l.Files(), 1)
	require.True(t, l.Remove(key))

	assert.Empty(t, l.Files())
	assert.Empty(t, l.Items())
	assert.Empty(t, l.DeletedIDs())
	assert.Empty(t, l.Fragment().Files)
}

func TestNameOnlyItemsRestrictedToAmenities(t *testing.T) {
	amenities := NewItemList(FamilyAmenities, nil)
	_, err := amenities.AddName("Pool")
	require.NoError(t, err)

	certs := NewItemList(FamilyCertificates, nil)
	_, err = certs.AddName("RERA")
	assert.ErrorIs(t, err, ErrNameOnlyNotAllowed)
	assert.Empty(t, certs.Items())
}

func TestItemsOrderExistingThenAdded(t *testing.T) {
	l := NewItemList(FamilyAmenities, []dtos.SubAsset{{ID: "a1", Name: "Gym"}})
	_, err := l.AddName("Pool")
	require.NoError(t, err)
	_, err = l.AddName("Spa")
	require.NoError(t, err)

	var names []string
	for _, it := range l.Items() {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"Gym", "Pool", "Spa"}, names)
}

func TestRemoveThenReAddMovesToTail(t *testing.T) {
	l := NewItemList(FamilyAmenities, nil)
	keyA, err := l.AddName("A")
	require.NoError(t, err)
	_, err = l.AddName("B")
	require.NoError(t, err)

	require.True(t, l.Remove(keyA))
	_, err = l.AddName("A")
	require.NoError(t, err)

	assert.Equal(t, "B, A", l.Fragment().Names)
}

func TestFragmentExcludesBlankNamesButKeepsThemVisible(t *testing.T) {
	l := NewItemList(FamilyAmenities, nil)
	_, err := l.AddName("Pool")
	require.NoError(t, err)
	_, err = l.AddName("   ")
	require.NoError(t, err)
	_, err = l.AddName("Gym")
	require.NoError(t, err)

	assert.Len(t, l.Items(), 3)

	f := l.Fragment()
	assert.Equal(t, "Pool, Gym", f.Names)
	require.Len(t, f.Records, 2)
	assert.Equal(t, dtos.NamedRecord{Name: "Pool", DisplayOrder: 0}, f.Records[0])
	assert.Equal(t, dtos.NamedRecord{Name: "Gym", DisplayOrder: 1}, f.Records[1])
}

func TestFragmentTrimsNamesAndReordersContiguously(t *testing.T) {
	l := NewItemList(FamilyCertificates, []dtos.SubAsset{
		{ID: "c1", Name: "  RERA  "},
		{ID: "c2", Name: "OC"},
		{ID: "c3", Name: "CC"},
	})
	require.True(t, l.Remove(l.Items()[1].Key))

	f := l.Fragment()
	assert.Equal(t, "RERA, CC", f.Names)
	require.Len(t, f.Records, 2)
	assert.Equal(t, 0, f.Records[0].DisplayOrder)
	assert.Equal(t, 1, f.Records[1].DisplayOrder)
	assert.Equal(t, []string{"c2"}, f.DeletionIDs)
}

func TestFragmentIsIdempotent(t *testing.T) {
	l := NewItemList(FamilyImages, []dtos.SubAsset{{ID: "i1", Name: "front"}})
	l.AddFile("back", upload("back.jpg"))

	first := l.Fragment()
	second := l.Fragment()
	assert.Equal(t, first, second)
}

func TestRenameAppliesToEitherVariant(t *testing.T) {
	l := NewItemList(FamilyCertificates, []dtos.SubAsset{{ID: "c1", Name: "RERA"}})
	newKey := l.AddFile("draft", upload("draft.pdf"))

	require.True(t, l.Rename(l.Items()[0].Key, "RERA 2024"))
	require.True(t, l.Rename(newKey, "Final"))
	assert.False(t, l.Rename("missing-key", "x"))

	f := l.Fragment()
	assert.Equal(t, "RERA 2024, Final", f.Names)
}

func TestFilesFollowAddOrder(t *testing.T) {
	l := NewItemList(FamilyImages, nil)
	l.AddFile("one", upload("one.jpg"))
	l.AddFile("two", upload("two.jpg"))

	got := l.Files()
	require.Len(t, got, 2)
	assert.Equal(t, "one.jpg", got[0].Name)
	assert.Equal(t, "two.jpg", got[1].Name)
}
