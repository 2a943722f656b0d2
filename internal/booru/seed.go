package booru

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
)

type User struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Rank      string    `db:"rank"`
	CreatedAt time.Time `db:"created_at"`
}

type Post struct {
	ID        int64     `db:"id"`
	UserID    *int64    `db:"user_id"`
	Safety    string    `db:"safety"`
	Score     int64     `db:"score"`
	Ratio     float64   `db:"ratio"`
	CreatedAt time.Time `db:"created_at"`
}

type Tag struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type PostTag struct {
	PostID int64 `db:"post_id"`
	TagID  int64 `db:"tag_id"`
}

type Comment struct {
	ID        int64     `db:"id"`
	PostID    int64     `db:"post_id"`
	UserID    *int64    `db:"user_id"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}

// Dataset is a complete catalog snapshot
type Dataset struct {
	Users    []User
	Posts    []Post
	Tags     []Tag
	PostTags []PostTag
	Comments []Comment
}

func ptr(v int64) *int64 { return &v }

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

// Sample is the dataset loaded by Seed and used by tests
func Sample() Dataset {
	return Dataset{
		Users: []User{
			{ID: 1, Name: "alice", Rank: "administrator", CreatedAt: at(2019, time.January, 5, 9)},
			{ID: 2, Name: "bob", Rank: "regular", CreatedAt: at(2020, time.March, 10, 18)},
			{ID: 3, Name: "carol", Rank: "power", CreatedAt: at(2021, time.July, 20, 7)},
		},
		Posts: []Post{
			{ID: 1, UserID: ptr(1), Safety: "safe", Score: 10, Ratio: 1.5, CreatedAt: at(2019, time.June, 1, 10)},
			{ID: 2, UserID: ptr(2), Safety: "sketchy", Score: 3, Ratio: 0.75, CreatedAt: at(2020, time.February, 10, 10)},
			{ID: 3, Safety: "unsafe", Score: -2, Ratio: 1, CreatedAt: at(2020, time.December, 31, 23)},
			{ID: 4, UserID: ptr(2), Safety: "safe", Score: 0, Ratio: 2, CreatedAt: at(2021, time.April, 4, 12)},
		},
		Tags: []Tag{
			{ID: 1, Name: "cat"},
			{ID: 2, Name: "dog"},
			{ID: 3, Name: "outdoor"},
			{ID: 4, Name: "100%"},
		},
		PostTags: []PostTag{
			{PostID: 1, TagID: 1},
			{PostID: 1, TagID: 3},
			{PostID: 2, TagID: 2},
			{PostID: 2, TagID: 4},
			{PostID: 4, TagID: 1},
			{PostID: 4, TagID: 2},
			{PostID: 4, TagID: 3},
		},
		Comments: []Comment{
			{ID: 1, PostID: 1, UserID: ptr(2), Text: "nice", CreatedAt: at(2019, time.June, 2, 8)},
			{ID: 2, PostID: 1, UserID: ptr(3), Text: "agreed", CreatedAt: at(2021, time.August, 1, 8)},
			{ID: 3, PostID: 4, UserID: ptr(1), Text: "tagged", CreatedAt: at(2021, time.April, 5, 8)},
		},
	}
}

var inserts = []struct {
	name string
	sql  string
	rows func(ds Dataset) any
}{
	{"users", `INSERT INTO users (id, name, rank, created_at) VALUES (:id, :name, :rank, :created_at)`,
		func(ds Dataset) any { return ds.Users }},
	{"posts", `INSERT INTO posts (id, user_id, safety, score, ratio, created_at) VALUES (:id, :user_id, :safety, :score, :ratio, :created_at)`,
		func(ds Dataset) any { return ds.Posts }},
	{"tags", `INSERT INTO tags (id, name) VALUES (:id, :name)`,
		func(ds Dataset) any { return ds.Tags }},
	{"post_tags", `INSERT INTO post_tags (post_id, tag_id) VALUES (:post_id, :tag_id)`,
		func(ds Dataset) any { return ds.PostTags }},
	{"comments", `INSERT INTO comments (id, post_id, user_id, text, created_at) VALUES (:id, :post_id, :user_id, :text, :created_at)`,
		func(ds Dataset) any { return ds.Comments }},
}

// Load inserts ds in a single transaction
func Load(ctx context.Context, db *sqlx.DB, ds Dataset) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return scerrors.Wrap(scerrors.ErrSQL, "begin seed transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, ins := range inserts {
		rows := ins.rows(ds)
		if isEmpty(rows) {
			continue
		}
		if _, err := tx.NamedExecContext(ctx, ins.sql, rows); err != nil {
			return scerrors.Wrap(scerrors.ErrSQL, "seed "+ins.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return scerrors.Wrap(scerrors.ErrSQL, "commit seed", err)
	}
	return nil
}

func isEmpty(rows any) bool {
	switch r := rows.(type) {
	case []User:
		return len(r) == 0
	case []Post:
		return len(r) == 0
	case []Tag:
		return len(r) == 0
	case []PostTag:
		return len(r) == 0
	case []Comment:
		return len(r) == 0
	}
	return true
}

// Seed loads the sample dataset
func Seed(ctx context.Context, db *sqlx.DB) error {
	return Load(ctx, db, Sample())
}
