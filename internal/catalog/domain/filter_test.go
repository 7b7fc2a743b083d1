package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []Product {
	return []Product{
		{
			ID:         "p1",
			Name:       "Velvet Rose",
			Category:   "Floral",
			Price:      110,
			TopNotes:   "Rose, Pink Pepper",
			HeartNotes: "Peony, Jasmine",
			BaseNotes:  "Musk, Amber",
		},
		{
			ID:         "p2",
			Name:       "Amber Woods",
			Category:   "Woody",
			Price:      135,
			TopNotes:   "Bergamot, Cardamom",
			HeartNotes: "Cedar, Vetiver",
			BaseNotes:  "Amber, Sandalwood",
		},
		{
			ID:         "p3",
			Name:       "Citrus Veil",
			Category:   "Fresh",
			Price:      95,
			TopNotes:   "Lemon, Bergamot",
			HeartNotes: "Neroli",
			BaseNotes:  "White Musk",
		},
	}
}

func TestFilterDefaultsReturnFullSetInOrder(t *testing.T) {
	products := sampleProducts()
	visible := Filter(products, DefaultFilter())
	require.Len(t, visible, 3)
	for i := range products {
		assert.Equal(t, products[i].ID, visible[i].ID)
	}
}

func TestFilterByCategory(t *testing.T) {
	visible := Filter(sampleProducts(), FilterState{Category: "Woody"})
	require.Len(t, visible, 1)
	assert.Equal(t, "Amber Woods", visible[0].Name)
}

func TestFilterCategoryCaseInsensitive(t *testing.T) {
	visible := Filter(sampleProducts(), FilterState{Category: "woody"})
	require.Len(t, visible, 1)
	assert.Equal(t, "p2", visible[0].ID)
}

func TestFilterSearchMatchesNameAndNotes(t *testing.T) {
	byName := Filter(sampleProducts(), FilterState{Search: "velvet"})
	require.Len(t, byName, 1)
	assert.Equal(t, "p1", byName[0].ID)

	// "bergamot" appears only in note fields
	byNote := Filter(sampleProducts(), FilterState{Search: "bergamot"})
	require.Len(t, byNote, 2)
	assert.Equal(t, "p2", byNote[0].ID)
	assert.Equal(t, "p3", byNote[1].ID)
}

func TestFilterPriceRangeInclusive(t *testing.T) {
	visible := Filter(sampleProducts(), FilterState{MinPrice: 95, MaxPrice: 110})
	require.Len(t, visible, 2)
	assert.Equal(t, "p1", visible[0].ID)
	assert.Equal(t, "p3", visible[1].ID)
}

func TestFilterNoteConjunction(t *testing.T) {
	visible := Filter(sampleProducts(), FilterState{
		Category: "Woody",
		Note:     "Amber",
	})
	require.Len(t, visible, 1)
	assert.Equal(t, "p2", visible[0].ID)

	// Amber note exists on p1 too, but the category filter excludes it
	none := Filter(sampleProducts(), FilterState{
		Category: "Fresh",
		Note:     "Amber",
	})
	assert.Empty(t, none)
}

func TestFilterIsIdempotentAndPure(t *testing.T) {
	products := sampleProducts()
	f := FilterState{Search: "musk"}

	first := Filter(products, f)
	second := Filter(first, f)
	assert.Equal(t, first, second)

	// source set untouched
	assert.Len(t, products, 3)
	assert.Equal(t, "Velvet Rose", products[0].Name)
}

func TestNoteVocabulary(t *testing.T) {
	notes := NoteVocabulary(sampleProducts())

	assert.Contains(t, notes, "Bergamot")
	assert.Contains(t, notes, "White Musk")
	assert.Contains(t, notes, "Pink Pepper")

	// deduplicated: Amber appears on two products in two fields
	count := 0
	for _, n := range notes {
		if n == "Amber" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	// sorted
	for i := 1; i < len(notes); i++ {
		assert.LessOrEqual(t, notes[i-1], notes[i])
	}
}

func TestNoteVocabularyTrimsAndSkipsEmpty(t *testing.T) {
	notes := NoteVocabulary([]Product{
		{TopNotes: " Oud ,  , Saffron "},
	})
	assert.Equal(t, []string{"Oud", "Saffron"}, notes)
}
