package pets

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Masterminds/squirrel"
	"github.com/Rana718/petseed/internal/database/sqlite"
	"github.com/Rana718/petseed/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) *Repository {
	t.Helper()

	adapter := sqlite.New()
	ctx := context.Background()
	require.NoError(t, adapter.Connect(ctx, "sqlite://"+filepath.Join(t.TempDir(), "app.db")))
	t.Cleanup(func() { adapter.Close() })

	require.NoError(t, adapter.ExecuteStatements(ctx, template.NewProjectTemplate(template.SQLite).PetsTableUp()))

	return NewRepository(adapter.DB(), adapter.Builder(), adapter.ClearTableStatements(TableName))
}

func lessonPets() []Pet {
	return []Pet{
		{Name: "Victoria", Species: "Dog"},
		{Name: "Michael", Species: "Cat"},
		{Name: "Kristie", Species: "Chicken"},
		{Name: "Ronald", Species: "Hamster"},
		{Name: "Mark", Species: "Cat"},
		{Name: "Shawna", Species: "Cat"},
	}
}

func TestRepositoryInsertAndQuery(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	n, err := repo.InsertAll(ctx, lessonPets(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, "<Pet 1, Victoria, Dog>", all[0].String())
	assert.Equal(t, int64(6), all[5].ID)

	cats, err := repo.Find(ctx, Query{Species: "Cat"})
	require.NoError(t, err)
	assert.Len(t, cats, 3)
	for _, c := range cats {
		assert.Equal(t, "Cat", c.Species)
	}

	count, err := repo.Count(ctx, Query{Species: "Cat"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	dogs, err := repo.Find(ctx, Query{Species: "Turtle"})
	require.NoError(t, err)
	assert.Empty(t, dogs)

	byName, err := repo.Find(ctx, Query{OrderBy: "name"})
	require.NoError(t, err)
	names := make([]string, len(byName))
	for i, p := range byName {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"Kristie", "Mark", "Michael", "Ronald", "Shawna", "Victoria"}, names)

	limited, err := repo.Find(ctx, Query{Limit: 3})
	require.NoError(t, err)
	require.Len(t, limited, 3)
	assert.Equal(t, int64(3), limited[2].ID)

	limitedCount, err := repo.Count(ctx, Query{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), limitedCount)

	page, err := repo.Find(ctx, Query{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, []int64{3, 4}, []int64{page[0].ID, page[1].ID})

	tail, err := repo.Find(ctx, Query{OrderBy: "name", Offset: 4})
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, "Shawna", tail[0].Name)
	assert.Equal(t, "Victoria", tail[1].Name)

	pageCount, err := repo.Count(ctx, Query{Limit: 3, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), pageCount)

	tailCount, err := repo.Count(ctx, Query{Species: "Cat", Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), tailCount)

	pastEnd, err := repo.Count(ctx, Query{Offset: 10})
	require.NoError(t, err)
	assert.Zero(t, pastEnd)

	desc, err := repo.Find(ctx, Query{OrderBy: "id", Desc: true, Limit: 1})
	require.NoError(t, err)
	require.Len(t, desc, 1)
	assert.Equal(t, "Shawna", desc[0].Name)
}

func TestRepositoryDeleteAllRestartsIDs(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.InsertAll(ctx, lessonPets(), 0)
	require.NoError(t, err)

	deleted, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), deleted)

	count, err := repo.Count(ctx, Query{})
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = repo.InsertAll(ctx, []Pet{{Name: "Fido", Species: "Dog"}}, 0)
	require.NoError(t, err)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(1), all[0].ID)
}

func TestRepositoryInsertRejectsInvalidPet(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.InsertAll(ctx, []Pet{{Name: "Fido", Species: "Dog"}, {Name: "", Species: "Cat"}}, 0)
	require.Error(t, err)

	count, err := repo.Count(ctx, Query{})
	require.NoError(t, err)
	assert.Zero(t, count, "validation must happen before any row is written")
}

func TestRepositoryPostgresSQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	qb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	repo := NewRepository(db, qb, []string{`TRUNCATE TABLE "pets" RESTART IDENTITY`})
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pets (name,species) VALUES ($1,$2),($3,$4)`)).
		WithArgs("Fido", "Dog", "Whiskers", "Cat").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pets (name,species) VALUES ($1,$2)`)).
		WithArgs("Hermie", "Hamster").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.InsertAll(ctx, []Pet{
		{Name: "Fido", Species: "Dog"},
		{Name: "Whiskers", Species: "Cat"},
		{Name: "Hermie", Species: "Hamster"},
	}, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, species FROM pets WHERE species = $1 ORDER BY name, id LIMIT 3`)).
		WithArgs("Cat").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "species"}).
			AddRow(2, "Whiskers", "Cat"))

	cats, err := repo.Find(ctx, Query{Species: "Cat", OrderBy: "name", Limit: 3})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "<Pet 2, Whiskers, Cat>", cats[0].String())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, species FROM pets ORDER BY id LIMIT 3 OFFSET 3`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "species"}))

	rest, err := repo.Find(ctx, Query{Limit: 3, Offset: 3})
	require.NoError(t, err)
	assert.Empty(t, rest)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM pets`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec(regexp.QuoteMeta(`TRUNCATE TABLE "pets" RESTART IDENTITY`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}
