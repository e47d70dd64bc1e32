// Package query translates inbound listing requests (filter, select, sort,
// page, limit) into store query descriptors. It is resource-agnostic: every
// listing endpoint funnels its raw URL values through Parse and hands the
// resulting Options to its repository.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"campfinder/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Defaults applied when the request omits or mangles page/limit.
const (
	DefaultPage  = 1
	DefaultLimit = 25
)

// reserved keys are consumed by the builder and never reach the store filter.
var reserved = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

// operator suffixes translated into their store-native counterparts.
var operators = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
	"in":  "$in",
}

// Populate names a parent reference to expand on each returned document.
type Populate struct {
	// From is the collection holding the referenced documents.
	From string
	// LocalField is the reference field on the listed documents.
	LocalField string
	// As is the field the expanded document is embedded under.
	As string
	// Projection limits the fields carried over from the parent.
	Projection bson.M
}

// Options is the structured query descriptor produced from a raw request.
type Options struct {
	Filter     bson.M
	Projection bson.M
	Sort       bson.D
	Page       int
	Limit      int
	Skip       int64
	Populate   *Populate
}

// Parse maps raw URL values to an Options descriptor. It never mutates its
// input and never fails: malformed numeric inputs fall back to the defaults,
// which is defined behavior for the listing endpoints.
func Parse(values url.Values) Options {
	opts := Options{
		Filter: bson.M{},
		Sort:   bson.D{{Key: "createdAt", Value: -1}},
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	if sel := values.Get("select"); sel != "" && sel != "all" {
		projection := bson.M{}
		for _, field := range strings.Split(sel, ",") {
			if field = strings.TrimSpace(field); field != "" {
				projection[field] = 1
			}
		}
		if len(projection) > 0 {
			opts.Projection = projection
		}
	}

	if sortBy := values.Get("sort"); sortBy != "" {
		sort := bson.D{}
		for _, field := range strings.Split(sortBy, ",") {
			if field = strings.TrimSpace(field); field == "" {
				continue
			}
			order := 1
			if strings.HasPrefix(field, "-") {
				order = -1
				field = field[1:]
			}
			sort = append(sort, bson.E{Key: field, Value: order})
		}
		if len(sort) > 0 {
			opts.Sort = sort
		}
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}
	opts.Skip = int64(opts.Page-1) * int64(opts.Limit)

	for key, vals := range values {
		if reserved[key] || len(vals) == 0 {
			continue
		}
		field, op := splitOperator(key)
		if op == "" {
			opts.Filter[field] = coerce(vals[0])
			continue
		}
		cond, ok := opts.Filter[field].(bson.M)
		if !ok {
			cond = bson.M{}
			opts.Filter[field] = cond
		}
		if op == "$in" {
			var list []any
			for _, item := range strings.Split(vals[0], ",") {
				list = append(list, coerce(strings.TrimSpace(item)))
			}
			cond[op] = list
		} else {
			cond[op] = coerce(vals[0])
		}
	}

	return opts
}

// splitOperator decomposes "tuition[gte]" into ("tuition", "$gte").
// Keys without a recognized suffix come back with an empty operator.
func splitOperator(key string) (field, op string) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	name := key[open+1 : len(key)-1]
	native, ok := operators[name]
	if !ok {
		return key, ""
	}
	return key[:open], native
}

// coerce turns a raw string into the value type the store compares with.
func coerce(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// Paginate derives the next/prev descriptors for a page against the total
// document count. The total is the unfiltered collection count; next exists
// iff page*limit < total, prev iff page > 1.
func Paginate(page, limit int, total int64) models.Pagination {
	var p models.Pagination
	if int64(page)*int64(limit) < total {
		p.Next = &models.PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &models.PageRef{Page: page - 1, Limit: limit}
	}
	return p
}

// Pipeline renders the options as an aggregation pipeline, used when a
// populate spec requires a join. Stage order matches the find-based path:
// filter, sort, skip, limit, then the lookup and projection.
func (o Options) Pipeline() []bson.M {
	pipeline := []bson.M{
		{"$match": o.Filter},
		{"$sort": sortOrDefault(o.Sort)},
		{"$skip": o.Skip},
		{"$limit": int64(o.Limit)},
	}
	if o.Populate != nil {
		inner := []bson.M{}
		if len(o.Populate.Projection) > 0 {
			inner = append(inner, bson.M{"$project": o.Populate.Projection})
		}
		pipeline = append(pipeline,
			bson.M{"$lookup": bson.M{
				"from":         o.Populate.From,
				"localField":   o.Populate.LocalField,
				"foreignField": "_id",
				"as":           o.Populate.As,
				"pipeline":     inner,
			}},
			bson.M{"$unwind": bson.M{
				"path":                       "$" + o.Populate.As,
				"preserveNullAndEmptyArrays": true,
			}},
		)
	}
	if len(o.Projection) > 0 {
		pipeline = append(pipeline, bson.M{"$project": o.Projection})
	}
	return pipeline
}

func sortOrDefault(sort bson.D) bson.D {
	if len(sort) == 0 {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	return sort
}
