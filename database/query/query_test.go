package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseDefaults(t *testing.T) {
	opts := Parse(url.Values{})

	assert.Equal(t, DefaultPage, opts.Page)
	assert.Equal(t, DefaultLimit, opts.Limit)
	assert.Equal(t, int64(0), opts.Skip)
	assert.Empty(t, opts.Filter)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
	assert.Nil(t, opts.Projection)
}

func TestParseFilterOperators(t *testing.T) {
	values := url.Values{}
	values.Set("tuition[gte]", "4000")
	values.Set("tuition[lte]", "10000")
	values.Set("housing", "true")
	values.Set("careers[in]", "Web Development, Data Science")

	opts := Parse(values)

	require.Contains(t, opts.Filter, "tuition")
	cond := opts.Filter["tuition"].(bson.M)
	assert.Equal(t, int64(4000), cond["$gte"])
	assert.Equal(t, int64(10000), cond["$lte"])

	assert.Equal(t, true, opts.Filter["housing"])

	careers := opts.Filter["careers"].(bson.M)["$in"].([]any)
	assert.Equal(t, []any{"Web Development", "Data Science"}, careers)
}

func TestParseUnknownOperatorSuffixKeptVerbatim(t *testing.T) {
	values := url.Values{}
	values.Set("name[regex]", "dev")

	opts := Parse(values)

	assert.Equal(t, "dev", opts.Filter["name[regex]"])
}

func TestParseSelectAndSort(t *testing.T) {
	values := url.Values{}
	values.Set("select", "name,description")
	values.Set("sort", "-averageCost,name")

	opts := Parse(values)

	assert.Equal(t, bson.M{"name": 1, "description": 1}, opts.Projection)
	assert.Equal(t, bson.D{
		{Key: "averageCost", Value: -1},
		{Key: "name", Value: 1},
	}, opts.Sort)
}

func TestParsePagination(t *testing.T) {
	values := url.Values{}
	values.Set("page", "3")
	values.Set("limit", "10")

	opts := Parse(values)

	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 10, opts.Limit)
	assert.Equal(t, int64(20), opts.Skip)
}

func TestParseMalformedNumericsFallBack(t *testing.T) {
	values := url.Values{}
	values.Set("page", "abc")
	values.Set("limit", "-5")

	opts := Parse(values)

	assert.Equal(t, DefaultPage, opts.Page)
	assert.Equal(t, DefaultLimit, opts.Limit)
}

func TestParseDoesNotMutateInput(t *testing.T) {
	values := url.Values{}
	values.Set("select", "name")
	values.Set("page", "2")
	values.Set("housing", "true")

	Parse(values)

	assert.Equal(t, "name", values.Get("select"))
	assert.Equal(t, "2", values.Get("page"))
	assert.Equal(t, "true", values.Get("housing"))
}

func TestPaginate(t *testing.T) {
	t.Run("middle page has both links", func(t *testing.T) {
		p := Paginate(2, 10, 35)
		require.NotNil(t, p.Next)
		require.NotNil(t, p.Prev)
		assert.Equal(t, 3, p.Next.Page)
		assert.Equal(t, 1, p.Prev.Page)
	})

	t.Run("first page has no prev", func(t *testing.T) {
		p := Paginate(1, 10, 35)
		assert.NotNil(t, p.Next)
		assert.Nil(t, p.Prev)
	})

	t.Run("last page has no next", func(t *testing.T) {
		p := Paginate(4, 10, 35)
		assert.Nil(t, p.Next)
		assert.NotNil(t, p.Prev)
	})

	t.Run("exact boundary has no next", func(t *testing.T) {
		p := Paginate(2, 10, 20)
		assert.Nil(t, p.Next)
	})
}

func TestPipelineStageOrder(t *testing.T) {
	opts := Options{
		Filter: bson.M{"housing": true},
		Sort:   bson.D{{Key: "name", Value: 1}},
		Skip:   10,
		Limit:  10,
		Populate: &Populate{
			From:       "bootcamps",
			LocalField: "bootcamp",
			As:         "bootcampInfo",
			Projection: bson.M{"name": 1, "description": 1},
		},
	}

	pipeline := opts.Pipeline()

	require.Len(t, pipeline, 6)
	assert.Contains(t, pipeline[0], "$match")
	assert.Contains(t, pipeline[1], "$sort")
	assert.Contains(t, pipeline[2], "$skip")
	assert.Contains(t, pipeline[3], "$limit")
	assert.Contains(t, pipeline[4], "$lookup")
	assert.Contains(t, pipeline[5], "$unwind")
}
