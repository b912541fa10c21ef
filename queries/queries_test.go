package queries

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"order-tracker/config"
	"order-tracker/database"
	"order-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.Database{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// complete returns an order with every tracked field filled.
func complete(tag string) models.Order {
	var o models.Order
	for _, col := range models.Columns {
		o.SetValue(col.Name, tag+"-"+col.Name)
	}
	return o
}

func seed(t *testing.T, db *gorm.DB, orders ...models.Order) []models.Order {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range orders {
		orders[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(&orders[i]).Error)
	}
	return orders
}

func ids(orders []models.Order) []uint {
	out := make([]uint, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestListMissingOnly(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := complete("a")
	a.PONumber = ""
	b := complete("b")
	b.PONumber = "PO123"
	c := complete("c")
	c.Quantity = "0"
	d := complete("d")
	d.Remark = ""
	seeded := seed(t, db, a, b, c, d)

	got, err := List(ctx, db, Filter{OnlyMissing: true})
	require.NoError(t, err)
	assert.Equal(t, []uint{seeded[2].ID, seeded[0].ID}, ids(got))
	for _, o := range got {
		assert.True(t, o.MissingAny())
	}
}

func TestListMissingOnlyIgnoresTerms(t *testing.T) {
	db := newTestDB(t)
	a := complete("a")
	a.POL = ""
	seeded := seed(t, db, a, complete("b"))

	got, err := List(context.Background(), db, Filter{
		OnlyMissing: true,
		Terms:       map[string]string{"pol": "Shanghai"},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{seeded[0].ID}, ids(got))
}

func TestListSearchSingleField(t *testing.T) {
	db := newTestDB(t)
	a := complete("a")
	a.POL = "Shanghai"
	b := complete("b")
	b.POL = "Ningbo"
	c := complete("c")
	c.POL = "Port of Shanghai"
	seeded := seed(t, db, a, b, c)

	got, err := List(context.Background(), db, Filter{Terms: map[string]string{"pol": "Shanghai"}})
	require.NoError(t, err)
	assert.Equal(t, []uint{seeded[2].ID, seeded[0].ID}, ids(got))
}

func TestListSearchANDAcrossFields(t *testing.T) {
	db := newTestDB(t)
	a := complete("a")
	a.POL, a.POD = "Shanghai", "Hamburg"
	b := complete("b")
	b.POL, b.POD = "Shanghai", "Rotterdam"
	seeded := seed(t, db, a, b)

	got, err := List(context.Background(), db, Filter{Terms: map[string]string{
		"pol": "Shanghai",
		"pod": "Ham",
	}})
	require.NoError(t, err)
	assert.Equal(t, []uint{seeded[0].ID}, ids(got))
}

func TestListSearchIsLiteral(t *testing.T) {
	db := newTestDB(t)
	a := complete("a")
	a.Quantity = "50%"
	b := complete("b")
	b.Quantity = "500"
	c := complete("c")
	c.MaterialCode = "A_1"
	d := complete("d")
	d.MaterialCode = "AB1"
	e := complete("e")
	e.Unit = "k!g"
	seeded := seed(t, db, a, b, c, d, e)

	got, err := List(context.Background(), db, Filter{Terms: map[string]string{"quantity": "%"}})
	require.NoError(t, err)
	assert.Equal(t, []uint{seeded[0].ID}, ids(got))

	got, err = List(context.Background(), db, Filter{Terms: map[string]string{"material_code": "A_"}})
	require.NoError(t, err)
	assert.Equal(t, []uint{seeded[2].ID}, ids(got))

	got, err = List(context.Background(), db, Filter{Terms: map[string]string{"unit": "!"}})
	require.NoError(t, err)
	assert.Equal(t, []uint{seeded[4].ID}, ids(got))
}

func TestListEmptyFilterReturnsAllNewestFirst(t *testing.T) {
	db := newTestDB(t)
	seeded := seed(t, db, complete("a"), complete("b"), complete("c"))

	got, err := List(context.Background(), db, Filter{Terms: map[string]string{
		"pol":     "   ",
		"unknown": "x",
	}})
	require.NoError(t, err)
	assert.Equal(t, []uint{seeded[2].ID, seeded[1].ID, seeded[0].ID}, ids(got))
}

func TestListTiesBrokenByID(t *testing.T) {
	db := newTestDB(t)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	first, second := complete("a"), complete("b")
	first.CreatedAt, second.CreatedAt = at, at
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	got, err := List(context.Background(), db, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []uint{second.ID, first.ID}, ids(got))
}

func TestFilterFromForm(t *testing.T) {
	form := map[string]string{
		"only_missing":  "on",
		"search_pol":    "  Shanghai ",
		"search_pod":    "   ",
		"search_bogus":  "x",
		"search_remark": "y",
	}
	f := FilterFromForm(func(key string) string { return form[key] })

	assert.True(t, f.OnlyMissing)
	assert.Equal(t, map[string]string{"pol": "Shanghai"}, f.Terms)
	assert.False(t, f.IsEmpty())

	empty := FilterFromForm(func(string) string { return "" })
	assert.True(t, empty.IsEmpty())
}

func TestFindOrder(t *testing.T) {
	db := newTestDB(t)
	seeded := seed(t, db, complete("a"))

	got, err := FindOrder(context.Background(), db, seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "a-pol", got.POL)

	_, err = FindOrder(context.Background(), db, seeded[0].ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
