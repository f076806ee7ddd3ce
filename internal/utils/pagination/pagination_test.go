package pagination

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		page, pageSize int
		want           Params
	}{
		{name: "defaults", page: 0, pageSize: 0, want: Params{Page: 1, PageSize: 20}},
		{name: "negative", page: -3, pageSize: -1, want: Params{Page: 1, PageSize: 20}},
		{name: "capped", page: 2, pageSize: 500, want: Params{Page: 2, PageSize: 100}},
		{name: "kept", page: 3, pageSize: 10, want: Params{Page: 3, PageSize: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.page, tt.pageSize))
		})
	}
}

func TestFetch_Boundaries(t *testing.T) {
	listCalls := 0
	list := func(offset, limit int) ([]int, error) {
		listCalls++
		return []int{offset, limit}, nil
	}

	page, err := Fetch(New(1, 10), func() (int64, error) { return 0, nil }, list)
	require.NoError(t, err)
	assert.Equal(t, []int{}, page.Data)
	assert.Zero(t, page.Total)
	assert.Zero(t, listCalls, "no range query when empty")

	page, err = Fetch(New(3, 10), func() (int64, error) { return 20, nil }, list)
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(20), page.Total)
	assert.Zero(t, listCalls, "no range query past the last row")

	page, err = Fetch(New(2, 10), func() (int64, error) { return 20, nil }, list)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 10}, page.Data)
	assert.Equal(t, 1, listCalls)

	_, err = Fetch(New(1, 10), func() (int64, error) { return 0, errors.New("boom") }, list)
	assert.Error(t, err)
}

func TestParseFromRequest(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		p := ParseFromRequest(c)
		return c.JSON(p)
	})

	for query, want := range map[string]string{
		"/?page=2&page_size=5": `{"Page":2,"PageSize":5}`,
		"/?limit=7":            `{"Page":1,"PageSize":7}`,
		"/?page=abc":           `{"Page":1,"PageSize":20}`,
	} {
		resp, err := app.Test(httptest.NewRequest("GET", query, nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, want, string(body), query)
	}
}
