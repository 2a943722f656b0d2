package filter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/nonibytes/searchcrit/searchcrit/criteria"
	"github.com/nonibytes/searchcrit/searchcrit/sqlexpr"
	"github.com/nonibytes/searchcrit/searchcrit/storage/sqlbuilder"
	"gotest.tools/v3/assert"
	_ "modernc.org/sqlite"
)

const fixtureDDL = `
CREATE TABLE posts (
	id INTEGER PRIMARY KEY,
	score INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE post_tags (
	post_id INTEGER NOT NULL REFERENCES posts(id),
	name TEXT NOT NULL
);
`

func newFixtureDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", filepath.Join(t.TempDir(), "filter.db"))
	assert.NilError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	db.MustExec(fixtureDDL)
	posts := []struct {
		id      int64
		score   int64
		created time.Time
	}{
		{1, 0, time.Date(2019, time.June, 1, 10, 0, 0, 0, time.UTC)},
		{2, 3, time.Date(2020, time.February, 10, 10, 0, 0, 0, time.UTC)},
		{3, 7, time.Date(2020, time.December, 31, 23, 0, 0, 0, time.UTC)},
	}
	for _, p := range posts {
		db.MustExec(`INSERT INTO posts(id, score, created_at) VALUES(?, ?, ?)`, p.id, p.score, p.created)
	}
	db.MustExec(`INSERT INTO post_tags(post_id, name) VALUES(1, 'cat'), (2, 'dog'), (2, '100%')`)
	return db
}

func selectIDs(t *testing.T, db *sqlx.DB, f Filter, c criteria.Criterion, negated bool) []int64 {
	t.Helper()
	q := sqlexpr.From("posts").Columns(postID).OrderBy(postID, false)
	q, err := f.Apply(q, c, negated)
	assert.NilError(t, err)

	sql, args := q.Build(sqlbuilder.DialectSQLite)
	ids := []int64{}
	assert.NilError(t, db.Select(&ids, sql, args...), sql)
	return ids
}

func TestSQLiteSubqueryMembership(t *testing.T) {
	db := newFixtureDB(t)
	tag := NewSubquery(postID, tagPostID, tagName, StrFactory(nil), nil)

	assert.DeepEqual(t, selectIDs(t, db, tag, criteria.Plain{Value: "cat"}, false), []int64{1})
	assert.DeepEqual(t, selectIDs(t, db, tag, criteria.Plain{Value: "cat"}, true), []int64{2, 3})
	assert.DeepEqual(t, selectIDs(t, db, tag, criteria.Plain{Value: "CAT"}, false), []int64{1})
	assert.DeepEqual(t, selectIDs(t, db, tag, criteria.Array{Values: []string{"cat", "dog"}}, true), []int64{3})
}

func TestSQLiteWildcardsAndLiterals(t *testing.T) {
	db := newFixtureDB(t)
	tag := NewSubquery(postID, tagPostID, tagName, StrFactory(nil), nil)

	assert.DeepEqual(t, selectIDs(t, db, tag, criteria.Plain{Value: "*o*"}, false), []int64{2})
	assert.DeepEqual(t, selectIDs(t, db, tag, criteria.Plain{Value: "100%"}, false), []int64{2})
	// "%" is literal, so "1%" matches neither "100%" nor anything else
	assert.DeepEqual(t, selectIDs(t, db, tag, criteria.Plain{Value: "1%"}, false), []int64{})
	assert.DeepEqual(t, selectIDs(t, db, tag, criteria.Plain{Value: "c_t"}, false), []int64{})
}

func TestSQLiteEmptyArrayMatchesNothing(t *testing.T) {
	db := newFixtureDB(t)
	tag := NewSubquery(postID, tagPostID, tagName, StrFactory(nil), nil)

	assert.DeepEqual(t, selectIDs(t, db, tag, criteria.Array{}, false), []int64{})
	assert.DeepEqual(t, selectIDs(t, db, tag, criteria.Array{}, true), []int64{1, 2, 3})
}

func TestSQLiteNumericRanges(t *testing.T) {
	db := newFixtureDB(t)
	score := NewNum(postScore, nil)

	assert.DeepEqual(t, selectIDs(t, db, score, criteria.MustRanged("1", "5"), false), []int64{2})
	assert.DeepEqual(t, selectIDs(t, db, score, criteria.MustRanged("1", "5"), true), []int64{1, 3})
	assert.DeepEqual(t, selectIDs(t, db, score, criteria.MustRanged("3", ""), false), []int64{2, 3})
	assert.DeepEqual(t, selectIDs(t, db, score, criteria.MustRanged("", "3"), false), []int64{1, 2})
	assert.DeepEqual(t, selectIDs(t, db, score, criteria.Array{Values: []string{"0", "7"}}, false), []int64{1, 3})
}

func TestSQLiteDates(t *testing.T) {
	db := newFixtureDB(t)
	created := NewDate(postCreated, func() time.Time { return fixedNow })

	assert.DeepEqual(t, selectIDs(t, db, created, criteria.Plain{Value: "2020"}, false), []int64{2, 3})
	assert.DeepEqual(t, selectIDs(t, db, created, criteria.Plain{Value: "2020-02"}, false), []int64{2})
	assert.DeepEqual(t, selectIDs(t, db, created, criteria.Plain{Value: "2020-12-31"}, false), []int64{3})
	assert.DeepEqual(t, selectIDs(t, db, created, criteria.MustRanged("", "2019"), false), []int64{1})
	assert.DeepEqual(t, selectIDs(t, db, created, criteria.MustRanged("2019-07", "2020-02"), false), []int64{2})
	assert.DeepEqual(t, selectIDs(t, db, created, criteria.Plain{Value: "2020"}, true), []int64{1})
}

func TestSQLiteDatesInZoneAheadOfUTC(t *testing.T) {
	db := newFixtureDB(t)
	ahead := fixedNow.In(time.FixedZone("LINT", 14*60*60))
	created := NewDate(postCreated, func() time.Time { return ahead })

	// post 3 is 2020-12-31 23:00 UTC, already New Year's Day at +14
	assert.DeepEqual(t, selectIDs(t, db, created, criteria.Plain{Value: "2020-12-31"}, false), []int64{})
	assert.DeepEqual(t, selectIDs(t, db, created, criteria.Plain{Value: "2021-01-01"}, false), []int64{3})
	assert.DeepEqual(t, selectIDs(t, db, created, criteria.Plain{Value: "2020"}, false), []int64{2})
	assert.DeepEqual(t, selectIDs(t, db, created, criteria.MustRanged("2021", ""), false), []int64{3})
}

func TestSQLiteCommentDateSubquery(t *testing.T) {
	db := newFixtureDB(t)
	db.MustExec(`CREATE TABLE comments (post_id INTEGER NOT NULL REFERENCES posts(id), created_at TIMESTAMP NOT NULL)`)
	db.MustExec(`INSERT INTO comments(post_id, created_at) VALUES(?, ?), (?, ?)`,
		1, time.Date(2021, time.May, 2, 8, 0, 0, 0, time.UTC),
		3, time.Date(2019, time.January, 1, 8, 0, 0, 0, time.UTC))

	commented := NewSubquery(postID,
		sqlexpr.Col("comments", "post_id"), sqlexpr.Col("comments", "created_at"),
		DateFactory(func() time.Time { return fixedNow }), nil)

	assert.DeepEqual(t, selectIDs(t, db, commented, criteria.Plain{Value: "2021"}, false), []int64{1})
	assert.DeepEqual(t, selectIDs(t, db, commented, criteria.Plain{Value: "2021"}, true), []int64{2, 3})
	assert.DeepEqual(t, selectIDs(t, db, commented, criteria.MustRanged("", "2020"), false), []int64{3})
}
