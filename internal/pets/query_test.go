package pets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   Query
	}{
		{"empty", nil, Query{}},
		{"all", []string{"all"}, Query{}},
		{"species", []string{"species=Cat"}, Query{Species: "Cat"}},
		{"quoted species", []string{"species='Cat'"}, Query{Species: "Cat"}},
		{"count", []string{"species=Cat", "count"}, Query{Species: "Cat", CountOnly: true}},
		{"order", []string{"order_by=name"}, Query{OrderBy: "name"}},
		{"order desc", []string{"order_by=-Species"}, Query{OrderBy: "species", Desc: true}},
		{"limit", []string{"limit=3"}, Query{Limit: 3}},
		{"name", []string{"name=Fido"}, Query{Name: "Fido"}},
		{"combined", []string{"species=Dog", "order_by=name", "limit=2"}, Query{Species: "Dog", OrderBy: "name", Limit: 2}},
		{"offset", []string{"limit=2", "offset=2"}, Query{Limit: 2, Offset: 2}},
		{"offset only", []string{"offset='4'"}, Query{Offset: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuery(tt.tokens)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQueryErrors(t *testing.T) {
	bad := [][]string{
		{"colour=red"},
		{"order_by=created_at"},
		{"limit=-1"},
		{"limit=three"},
		{"offset=-2"},
		{"offset=two"},
		{"everything"},
	}

	for _, tokens := range bad {
		_, err := ParseQuery(tokens)
		require.Error(t, err, "tokens %v", tokens)
		assert.True(t, errors.Is(err, ErrInvalidQuery))
	}
}

func TestPetString(t *testing.T) {
	p := Pet{ID: 2, Name: "Whiskers", Species: "Cat"}
	assert.Equal(t, "<Pet 2, Whiskers, Cat>", p.String())

	list := []Pet{{ID: 1, Name: "Fido", Species: "Dog"}, p}
	assert.Equal(t, "[<Pet 1, Fido, Dog>, <Pet 2, Whiskers, Cat>]", FormatList(list))
	assert.Equal(t, "[]", FormatList(nil))
}

func TestPetValidate(t *testing.T) {
	assert.NoError(t, Pet{Name: "Fido", Species: "Dog"}.Validate())
	assert.Error(t, Pet{Name: " ", Species: "Dog"}.Validate())
	assert.Error(t, Pet{Name: "Fido"}.Validate())
}
