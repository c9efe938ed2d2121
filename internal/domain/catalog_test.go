package domain_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"eatery_catalog/internal/domain"
)

func eatery(id uint64, name string) domain.Eatery {
	return domain.Eatery{
		ID:          id,
		Name:        name,
		Categories:  []string{"cafe", "breakfast"},
		OpenTime:    "8:00 AM",
		CloseTime:   "4:00 PM",
		Rating:      4.5,
		Photo:       "https://example.com/p.jpg",
		Address:     "1 Main St",
		PhoneNumber: "555-0100",
		Reviews:     []string{"great", "ok"},
	}
}

func TestNewCatalog_SortsByID(t *testing.T) {
	c := domain.NewCatalog([]domain.Eatery{eatery(3, "c"), eatery(1, "a"), eatery(2, "b")})

	got := c.List()
	require.Len(t, got, 3)
	require.Equal(t, uint64(1), got[0].ID)
	require.Equal(t, uint64(2), got[1].ID)
	require.Equal(t, uint64(3), got[2].ID)
}

func TestCatalog_GetMatchesListAndAddsReviews(t *testing.T) {
	c := domain.NewCatalog([]domain.Eatery{eatery(7, "Cafe Seven"), eatery(2, "Two")})

	for _, b := range c.List() {
		full, ok := c.Get(b.ID)
		require.True(t, ok)
		require.Equal(t, b, full.Basic())
		require.Equal(t, []string{"great", "ok"}, full.Reviews)
	}
}

func TestCatalog_GetUnknownID(t *testing.T) {
	c := domain.NewCatalog([]domain.Eatery{eatery(1, "a")})

	got, ok := c.Get(99)
	require.False(t, ok)
	require.Equal(t, domain.Eatery{}, got)
}

func TestCatalog_Empty(t *testing.T) {
	c := domain.NewCatalog(nil)

	require.Equal(t, 0, c.Len())
	require.NotNil(t, c.List())
	require.Empty(t, c.List())
	require.Empty(t, c.SearchByName(""))
	_, ok := c.Get(0)
	require.False(t, ok)
}

func TestCatalog_SearchByName(t *testing.T) {
	c := domain.NewCatalog([]domain.Eatery{
		eatery(1, "College Cafe"),
		eatery(2, "Noodle Bar"),
		eatery(3, "The COLLEGE Inn"),
		eatery(4, "Deli"),
	})

	require.Len(t, c.SearchByName(""), 4)
	require.Len(t, c.SearchByName("college"), 2)
	require.Equal(t, c.SearchByName("CAFE"), c.SearchByName("cafe"))
	require.Empty(t, c.SearchByName("xyz"))

	got := c.SearchByName("c")
	require.Len(t, got, 2)
	require.Equal(t, uint64(1), got[0].ID)
	require.Equal(t, uint64(3), got[1].ID)
}

func TestCatalog_DuplicateIDsFirstMatchWins(t *testing.T) {
	c := domain.NewCatalog([]domain.Eatery{eatery(5, "first"), eatery(1, "x"), eatery(5, "second")})

	got, ok := c.Get(5)
	require.True(t, ok)
	require.Equal(t, "first", got.Name)
	require.Equal(t, []uint64{5}, c.DuplicateIDs())
	require.Len(t, c.List(), 3)
}

func TestCatalog_ResultsDoNotAliasCatalog(t *testing.T) {
	c := domain.NewCatalog([]domain.Eatery{eatery(1, "a")})

	full, _ := c.Get(1)
	full.Reviews[0] = "mutated"
	full.Categories[0] = "mutated"
	c.List()[0].Categories[1] = "mutated"

	again, _ := c.Get(1)
	require.Equal(t, []string{"great", "ok"}, again.Reviews)
	require.Equal(t, []string{"cafe", "breakfast"}, again.Categories)
}

func TestCatalog_InputNotAliased(t *testing.T) {
	in := []domain.Eatery{eatery(1, "a")}
	c := domain.NewCatalog(in)
	in[0].Name = "changed"
	in[0].Reviews[0] = "changed"

	got, _ := c.Get(1)
	require.Equal(t, "a", got.Name)
	require.Equal(t, "great", got.Reviews[0])
}

func TestCatalog_Version(t *testing.T) {
	a := domain.NewCatalog([]domain.Eatery{eatery(2, "b"), eatery(1, "a")})
	b := domain.NewCatalog([]domain.Eatery{eatery(1, "a"), eatery(2, "b")})
	require.Equal(t, a.Version(), b.Version())

	changed := eatery(2, "b")
	changed.Rating = 1
	c := domain.NewCatalog([]domain.Eatery{eatery(1, "a"), changed})
	require.NotEqual(t, a.Version(), c.Version())
}

func TestCatalog_ConcurrentReads(t *testing.T) {
	c := domain.NewCatalog([]domain.Eatery{eatery(1, "Cafe"), eatery(2, "Deli")})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = c.List()
				_, _ = c.Get(2)
				_ = c.SearchByName("caf")
			}
		}()
	}
	wg.Wait()
}

func TestEatery_BasicOmitsReviews(t *testing.T) {
	e := eatery(1, "a")
	b := e.Basic()

	require.Equal(t, e.ID, b.ID)
	require.Equal(t, e.Name, b.Name)
	require.Equal(t, e.Categories, b.Categories)
	require.Equal(t, e.OpenTime, b.OpenTime)
	require.Equal(t, e.CloseTime, b.CloseTime)
	require.Equal(t, e.Rating, b.Rating)
	require.Equal(t, e.Photo, b.Photo)
	require.Equal(t, e.Address, b.Address)
	require.Equal(t, e.PhoneNumber, b.PhoneNumber)
}
