package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	feedmodel "garden_feed/internal/domain/feed/model"
	"garden_feed/internal/domain/feed/repository"
	"garden_feed/internal/domain/feed/service"
	usermodel "garden_feed/internal/domain/user/model"
	userrepo "garden_feed/internal/domain/user/repository"
	"garden_feed/internal/pkg/config"
	"garden_feed/internal/pkg/database"
	"garden_feed/internal/pkg/uploader"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(t *testing.T) (*gin.Engine, *database.MemDB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := database.NewMemDB()
	db.Update(func() {
		db.Users[1] = &usermodel.User{ID: 1, Username: "sarah", Email: "sarah@example.com"}
		db.Users[2] = &usermodel.User{ID: 2, Username: "mike", Email: "mike@example.com"}
	})

	up, err := uploader.NewLocalUploader(config.UploadConfig{
		Dir:          t.TempDir(),
		MaxFileSize:  5 * 1024 * 1024,
		PublicPrefix: "/uploads",
	})
	assert.NoError(t, err)

	h := NewFeedHandler(service.NewFeedService(repository.NewFeedRepository(db), userrepo.NewUserRepository(db)), up)

	r := gin.New()
	g := r.Group("/api/posts")
	{
		g.GET("", h.GetFeed)
		g.POST("", h.CreatePost)
		g.GET("/:id", h.GetPost)
		g.GET("/:id/comments", h.GetComments)
		g.POST("/:id/comments", h.AddComment)
		g.POST("/:id/like", h.ToggleLike)
		g.GET("/:id/like/:userId", h.GetLikeStatus)
	}
	return r, db
}

func performJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func insertPostAt(db *database.MemDB, userID uint, category string, createdAt time.Time) uint {
	var id uint
	db.Update(func() {
		id = db.NextPostID()
		db.Posts[id] = &feedmodel.Post{
			ID: id, UserID: userID,
			Content: "content", Category: category,
			CreatedAt: createdAt,
		}
	})
	return id
}

func TestGetFeedOrderingAndFilter(t *testing.T) {
	r, db := newTestRouter(t)
	now := time.Now()

	oldest := insertPostAt(db, 1, "drought", now.Add(-3*time.Hour))
	insertPostAt(db, 2, "pests", now.Add(-2*time.Hour))
	newest := insertPostAt(db, 1, "drought", now.Add(-1*time.Hour))

	t.Run("all posts newest first", func(t *testing.T) {
		w := performJSON(r, http.MethodGet, "/api/posts", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var posts []feedmodel.PostWithUser
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
		assert.Len(t, posts, 3)
		assert.Equal(t, newest, posts[0].ID)
		assert.Equal(t, oldest, posts[2].ID)
		assert.Equal(t, "sarah", posts[0].User.Username)
	})

	t.Run("category filter", func(t *testing.T) {
		w := performJSON(r, http.MethodGet, "/api/posts?category=drought", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var posts []feedmodel.PostWithUser
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
		assert.Len(t, posts, 2)
		for _, p := range posts {
			assert.Equal(t, "drought", p.Category)
		}
		assert.Equal(t, newest, posts[0].ID, "order preserved under filter")
	})
}

func TestGetFeedEmptyStore(t *testing.T) {
	r, _ := newTestRouter(t)

	t.Run("no posts yields empty array", func(t *testing.T) {
		w := performJSON(r, http.MethodGet, "/api/posts", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("unmatched category yields empty array", func(t *testing.T) {
		w := performJSON(r, http.MethodGet, "/api/posts?category=nothing", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})
}

func TestGetPostEndpoint(t *testing.T) {
	r, db := newTestRouter(t)
	id := insertPostAt(db, 2, "success", time.Now())

	t.Run("found", func(t *testing.T) {
		w := performJSON(r, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var post feedmodel.PostWithUser
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
		assert.Equal(t, "mike", post.User.Username)
	})

	t.Run("missing id is 404, not 500", func(t *testing.T) {
		w := performJSON(r, http.MethodGet, "/api/posts/9999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Post not found")
	})
}

func TestCreatePostJSON(t *testing.T) {
	r, _ := newTestRouter(t)

	t.Run("success without image", func(t *testing.T) {
		w := performJSON(r, http.MethodPost, "/api/posts", gin.H{
			"userId": 1, "content": "my tomatoes are thriving", "category": "success",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Nil(t, body["imageUrl"], "no image means null imageUrl")
		assert.Equal(t, float64(0), body["likes"])
		assert.Equal(t, float64(0), body["commentCount"])
	})

	t.Run("missing fields rejected with generic message", func(t *testing.T) {
		w := performJSON(r, http.MethodPost, "/api/posts", gin.H{"userId": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid post data")
	})
}

// multipartBody 构造带字段和可选文件的 multipart 请求体
func multipartBody(t *testing.T, fields map[string]string, fileName, fileType string, fileSize int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		assert.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="`+fileName+`"`)
		h.Set("Content-Type", fileType)
		part, err := w.CreatePart(h)
		assert.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("x"), fileSize))
		assert.NoError(t, err)
	}
	assert.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCreatePostMultipart(t *testing.T) {
	fields := map[string]string{"userId": "1", "content": "look at this", "category": "question"}

	t.Run("with image", func(t *testing.T) {
		r, _ := newTestRouter(t)
		body, contentType := multipartBody(t, fields, "plant.jpg", "image/jpeg", 2048)
		req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		url, ok := resp["imageUrl"].(string)
		assert.True(t, ok)
		assert.True(t, strings.HasPrefix(url, "/uploads/"))
	})

	t.Run("without image", func(t *testing.T) {
		r, _ := newTestRouter(t)
		body, contentType := multipartBody(t, fields, "", "", 0)
		req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Nil(t, resp["imageUrl"])
	})

	t.Run("oversize file names the size constraint", func(t *testing.T) {
		r, _ := newTestRouter(t)
		body, contentType := multipartBody(t, fields, "huge.png", "image/png", 6*1024*1024)
		req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "File too large (max 5MB)")
	})

	t.Run("non-image file names the type constraint", func(t *testing.T) {
		r, _ := newTestRouter(t)
		body, contentType := multipartBody(t, fields, "notes.txt", "text/plain", 64)
		req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Only image files are allowed")
	})
}

func TestCommentsFlow(t *testing.T) {
	r, db := newTestRouter(t)
	postID := insertPostAt(db, 1, "question", time.Now())

	w := performJSON(r, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), gin.H{
		"userId": 2, "content": "try neem oil",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var comment feedmodel.Comment
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))
	assert.Equal(t, postID, comment.PostID)
	assert.Equal(t, uint(2), comment.UserID)

	// 动态上的评论计数已同步更新
	w = performJSON(r, http.MethodGet, fmt.Sprintf("/api/posts/%d", postID), nil)
	var post feedmodel.PostWithUser
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, 1, post.CommentCount)

	w = performJSON(r, http.MethodGet, fmt.Sprintf("/api/posts/%d/comments", postID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var comments []feedmodel.CommentWithUser
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	assert.Len(t, comments, 1)
	assert.Equal(t, "mike", comments[0].User.Username)

	t.Run("invalid body rejected", func(t *testing.T) {
		w := performJSON(r, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), gin.H{"userId": 2})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid comment data")
	})
}

func TestCommentsEdgeCases(t *testing.T) {
	r, db := newTestRouter(t)
	postID := insertPostAt(db, 1, "question", time.Now())

	t.Run("post without comments yields empty array", func(t *testing.T) {
		w := performJSON(r, http.MethodGet, fmt.Sprintf("/api/posts/%d/comments", postID), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("unparsable id treated as missing post", func(t *testing.T) {
		w := performJSON(r, http.MethodGet, "/api/posts/abc/comments", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Post not found")
	})
}

func TestReferentialIntegrity(t *testing.T) {
	r, db := newTestRouter(t)
	postID := insertPostAt(db, 1, "question", time.Now())

	commentRows := func() int {
		n := 0
		db.View(func() { n = len(db.Comments) })
		return n
	}

	t.Run("comment on missing post stores nothing", func(t *testing.T) {
		w := performJSON(r, http.MethodPost, "/api/posts/9999/comments", gin.H{
			"userId": 1, "content": "anyone home?",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Post not found")
		assert.Zero(t, commentRows(), "rejected comment must not be stored")
	})

	t.Run("comment by unknown user stores nothing", func(t *testing.T) {
		w := performJSON(r, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), gin.H{
			"userId": 777, "content": "ghost writer",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "User not found")
		assert.Zero(t, commentRows())
	})

	t.Run("post by unknown user rejected", func(t *testing.T) {
		w := performJSON(r, http.MethodPost, "/api/posts", gin.H{
			"userId": 777, "content": "hello", "category": "question",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "User not found")
	})

	t.Run("like on missing post rejected", func(t *testing.T) {
		w := performJSON(r, http.MethodPost, "/api/posts/9999/like", gin.H{"userId": 1})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Post not found")

		likes := 0
		db.View(func() { likes = len(db.Likes) })
		assert.Zero(t, likes)
	})
}

func TestLikeToggleEndpoint(t *testing.T) {
	r, db := newTestRouter(t)
	postID := insertPostAt(db, 1, "drought", time.Now())

	type likeResp struct {
		Liked     bool `json:"liked"`
		LikeCount int  `json:"likeCount"`
	}

	w := performJSON(r, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", postID), gin.H{"userId": 2})
	assert.Equal(t, http.StatusOK, w.Code)
	var resp likeResp
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Liked)
	assert.Equal(t, 1, resp.LikeCount)

	// 状态查询
	w = performJSON(r, http.MethodGet, fmt.Sprintf("/api/posts/%d/like/2", postID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"liked":true`)

	// 第二次切换回到初始状态
	w = performJSON(r, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", postID), gin.H{"userId": 2})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Liked)
	assert.Equal(t, 0, resp.LikeCount)

	w = performJSON(r, http.MethodGet, fmt.Sprintf("/api/posts/%d/like/2", postID), nil)
	assert.Contains(t, w.Body.String(), `"liked":false`)
}
