package booru

import (
	"time"

	"github.com/nonibytes/searchcrit/searchcrit/filter"
	"github.com/nonibytes/searchcrit/searchcrit/registry"
	"github.com/nonibytes/searchcrit/searchcrit/sqlexpr"
	"github.com/nonibytes/searchcrit/searchcrit/transform"
)

const (
	EntityPost = "post"
	EntityUser = "user"
)

var (
	PostID      = sqlexpr.Col("posts", "id")
	postUserID  = sqlexpr.Col("posts", "user_id")
	postSafety  = sqlexpr.Col("posts", "safety")
	PostScore   = sqlexpr.Col("posts", "score")
	PostRatio   = sqlexpr.Col("posts", "ratio")
	postCreated = sqlexpr.Col("posts", "created_at")

	tagID   = sqlexpr.Col("tags", "id")
	tagName = sqlexpr.Col("tags", "name")

	postTagPostID = sqlexpr.Col("post_tags", "post_id")
	postTagTagID  = sqlexpr.Col("post_tags", "tag_id")

	statsPostID       = sqlexpr.Col("post_stats", "post_id")
	statsTagCount     = sqlexpr.Col("post_stats", "tag_count")
	statsCommentCount = sqlexpr.Col("post_stats", "comment_count")

	commentPostID  = sqlexpr.Col("comments", "post_id")
	commentUserID  = sqlexpr.Col("comments", "user_id")
	commentCreated = sqlexpr.Col("comments", "created_at")

	UserID      = sqlexpr.Col("users", "id")
	userName    = sqlexpr.Col("users", "name")
	userRank    = sqlexpr.Col("users", "rank")
	userCreated = sqlexpr.Col("users", "created_at")
)

var safeties = map[string]string{
	"safe":         "safe",
	"sketchy":      "sketchy",
	"questionable": "sketchy",
	"unsafe":       "unsafe",
}

var ranks = map[string]string{
	"restricted":    "restricted",
	"regular":       "regular",
	"power":         "power",
	"moderator":     "moderator",
	"mod":           "moderator",
	"administrator": "administrator",
	"admin":         "administrator",
}

func joinUsers(on sqlexpr.Column) filter.Decorator {
	return func(q *sqlexpr.Select) *sqlexpr.Select {
		return q.Join(sqlexpr.InnerJoin, "users", sqlexpr.ColumnsEqual{Left: UserID, Right: on})
	}
}

// PostConfig searches posts. Anonymous tokens match tag names.
func PostConfig(now func() time.Time) registry.Config {
	tag := filter.NewSubquery(PostID, postTagPostID, tagName, filter.StrFactory(nil),
		func(q *sqlexpr.Select) *sqlexpr.Select {
			return q.Join(sqlexpr.InnerJoin, "tags", sqlexpr.ColumnsEqual{Left: tagID, Right: postTagTagID})
		})
	id := filter.NewNum(PostID, transform.Integer)
	score := filter.NewNum(PostScore, transform.Integer)
	ratio := filter.NewNum(PostRatio, transform.Float)
	safety := filter.NewStr(postSafety, transform.EnumPattern(safeties))
	tagCount := filter.NewSubquery(PostID, statsPostID, statsTagCount, filter.NumFactory(nil), nil)
	commentCount := filter.NewSubquery(PostID, statsPostID, statsCommentCount, filter.NumFactory(nil), nil)
	created := filter.NewDate(postCreated, now)
	uploader := filter.NewSubquery(PostID, PostID, userName, filter.StrFactory(nil), joinUsers(postUserID))
	commenter := filter.NewSubquery(PostID, commentPostID, userName, filter.StrFactory(nil), joinUsers(commentUserID))
	commentDate := filter.NewSubquery(PostID, commentPostID, commentCreated, filter.DateFactory(now), nil)

	return registry.Config{
		ID:   PostID,
		Base: func() *sqlexpr.Select {
			return sqlexpr.From("posts").
				Preload("users", sqlexpr.ColumnsEqual{Left: UserID, Right: postUserID}, userName)
		},
		Named: map[string]filter.Filter{
			"id":            id,
			"score":         score,
			"ratio":         ratio,
			"image-ratio":   ratio,
			"safety":        safety,
			"rating":        safety,
			"tag":           tag,
			"tag-count":     tagCount,
			"comment-count": commentCount,
			"creation-date": created,
			"creation-time": created,
			"date":          created,
			"uploader":      uploader,
			"upload":        uploader,
			"submit":        uploader,
			"comment":       commenter,
			"comment-date":  commentDate,
		},
		Anonymous: tag,
	}
}

// UserConfig searches users. Anonymous tokens match user names.
func UserConfig(now func() time.Time) registry.Config {
	name := filter.NewStr(userName, nil)
	created := filter.NewDate(userCreated, now)

	return registry.Config{
		ID:   UserID,
		Base: func() *sqlexpr.Select { return sqlexpr.From("users") },
		Named: map[string]filter.Filter{
			"name":          name,
			"rank":          filter.NewStr(userRank, transform.EnumPattern(ranks)),
			"creation-date": created,
			"creation-time": created,
		},
		Anonymous: name,
	}
}

// Register adds the post and user configs to reg
func Register(reg *registry.Registry, now func() time.Time) {
	reg.Register(EntityPost, PostConfig(now))
	reg.Register(EntityUser, UserConfig(now))
}

var statsColumns = map[string]map[string]sqlexpr.Column{
	EntityPost: {"id": PostID, "score": PostScore, "ratio": PostRatio},
	EntityUser: {"id": UserID},
}

// StatsColumn resolves a numeric column of entity for aggregate stats
func StatsColumn(entity, field string) (sqlexpr.Column, bool) {
	col, ok := statsColumns[entity][field]
	return col, ok
}
