package service

import (
	"context"
	"encoding/json"
	"path"
	"sort"
	"time"

	"github.com/QuillApp/web-service/internal/model"
	"github.com/QuillApp/web-service/internal/repository"
	"github.com/QuillApp/web-service/internal/repository/postgres"
	"github.com/QuillApp/web-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

// memStore is an in-memory stand-in for the postgres repositories. It
// mirrors the schema's referential rules: deleting a post drops its
// comments, follow edges join through usernames.
type memStore struct {
	users    map[uuid.UUID]*model.User
	groups   map[int64]*model.Group
	posts    map[int64]*model.Post
	comments map[int64]*model.Comment
	follows  []model.Follow

	nextPostID    int64
	nextCommentID int64
	nextFollowID  int64
	clock         time.Time
}

var (
	_ postgres.Post   = (*memStore)(nil)
	_ postgres.Group  = (*memStore)(nil)
	_ postgres.Follow = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]*model.User),
		groups:   make(map[int64]*model.Group),
		posts:    make(map[int64]*model.Post),
		comments: make(map[int64]*model.Comment),
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) addUser(username string) *model.User {
	user := &model.User{ID: uuid.New(), Username: username}
	m.users[user.ID] = user
	return user
}

func (m *memStore) addGroup(title, slug string) *model.Group {
	group := &model.Group{ID: int64(len(m.groups) + 1), Title: title, Slug: slug}
	m.groups[group.ID] = group
	return group
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memStore) detail(post *model.Post) *model.PostDetail {
	d := &model.PostDetail{Post: *post}
	if user, ok := m.users[post.AuthorID]; ok {
		d.Author = *user
	}
	if post.GroupID != nil {
		if group, ok := m.groups[*post.GroupID]; ok {
			d.Group = group
		}
	}
	return d
}

func (m *memStore) sortedPosts(match func(*model.Post) bool) []*model.PostDetail {
	var posts []*model.Post
	for _, post := range m.posts {
		if match(post) {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].PubDate.After(posts[j].PubDate)
		}
		return posts[i].ID > posts[j].ID
	})

	details := make([]*model.PostDetail, 0, len(posts))
	for _, post := range posts {
		details = append(details, m.detail(post))
	}
	return details
}

func slicePage(details []*model.PostDetail, limit, offset int) []*model.PostDetail {
	if offset >= len(details) {
		return nil
	}
	end := offset + limit
	if end > len(details) {
		end = len(details)
	}
	return details[offset:end]
}

func (m *memStore) followedAuthors(userID uuid.UUID) map[uuid.UUID]struct{} {
	authors := make(map[uuid.UUID]struct{})
	for _, follow := range m.follows {
		if follow.UserID == userID {
			authors[follow.AuthorID] = struct{}{}
		}
	}
	return authors
}

// postgres.Post

func (m *memStore) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	m.nextPostID++
	post.ID = m.nextPostID
	post.PubDate = m.tick()
	m.posts[post.ID] = &post
	copied := post
	return &copied, nil
}

func (m *memStore) Update(ctx context.Context, post model.Post) error {
	existing, ok := m.posts[post.ID]
	if !ok {
		return nil
	}
	existing.Text = post.Text
	existing.GroupID = post.GroupID
	existing.ImageURL = post.ImageURL
	return nil
}

func (m *memStore) Delete(ctx context.Context, id int64) error {
	delete(m.posts, id)
	for commentID, comment := range m.comments {
		if comment.PostID == id {
			delete(m.comments, commentID)
		}
	}
	return nil
}

func (m *memStore) FindByID(ctx context.Context, id int64) (*model.PostDetail, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return m.detail(post), nil
}

func (m *memStore) CountAll(ctx context.Context) (int, error) {
	return len(m.posts), nil
}

func (m *memStore) CountByGroup(ctx context.Context, groupID int64) (int, error) {
	count := 0
	for _, post := range m.posts {
		if post.GroupID != nil && *post.GroupID == groupID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	count := 0
	for _, post := range m.posts {
		if post.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) CountFeed(ctx context.Context, userID uuid.UUID) (int, error) {
	authors := m.followedAuthors(userID)
	count := 0
	for _, post := range m.posts {
		if _, ok := authors[post.AuthorID]; ok {
			count++
		}
	}
	return count, nil
}

func (m *memStore) FindLatest(ctx context.Context, limit, offset int) ([]*model.PostDetail, error) {
	return slicePage(m.sortedPosts(func(*model.Post) bool { return true }), limit, offset), nil
}

func (m *memStore) FindByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*model.PostDetail, error) {
	return slicePage(m.sortedPosts(func(p *model.Post) bool {
		return p.GroupID != nil && *p.GroupID == groupID
	}), limit, offset), nil
}

func (m *memStore) FindByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*model.PostDetail, error) {
	return slicePage(m.sortedPosts(func(p *model.Post) bool {
		return p.AuthorID == authorID
	}), limit, offset), nil
}

func (m *memStore) FindFeed(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.PostDetail, error) {
	authors := m.followedAuthors(userID)
	return slicePage(m.sortedPosts(func(p *model.Post) bool {
		_, ok := authors[p.AuthorID]
		return ok
	}), limit, offset), nil
}

// postgres.Comment

func (m *memStore) CreateComment(comment model.Comment) *model.Comment {
	m.nextCommentID++
	comment.ID = m.nextCommentID
	comment.Created = m.tick()
	m.comments[comment.ID] = &comment
	copied := comment
	return &copied
}

func (m *memStore) FindPostComments(ctx context.Context, postID int64) ([]*model.PostComment, error) {
	var comments []*model.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].Created.Equal(comments[j].Created) {
			return comments[i].Created.After(comments[j].Created)
		}
		return comments[i].ID > comments[j].ID
	})

	result := make([]*model.PostComment, 0, len(comments))
	for _, comment := range comments {
		pc := &model.PostComment{Comment: *comment}
		if user, ok := m.users[comment.AuthorID]; ok {
			pc.Author = *user
		}
		result = append(result, pc)
	}
	return result, nil
}

// postgres.Group

func (m *memStore) FindBySlug(ctx context.Context, slug string) (*model.Group, error) {
	for _, group := range m.groups {
		if group.Slug == slug {
			return group, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memStore) FindAll(ctx context.Context) ([]*model.Group, error) {
	var groups []*model.Group
	for _, group := range m.groups {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}

// postgres.User

func (m *memStore) FindUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (m *memStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memStore) FindAllUsers(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// postgres.Follow

func (m *memStore) CreateIfNotExists(ctx context.Context, userID, authorID uuid.UUID) error {
	for _, follow := range m.follows {
		if follow.UserID == userID && follow.AuthorID == authorID {
			return nil
		}
	}
	m.nextFollowID++
	m.follows = append(m.follows, model.Follow{ID: m.nextFollowID, UserID: userID, AuthorID: authorID})
	return nil
}

func (m *memStore) DeleteByUserAndAuthorName(ctx context.Context, userID uuid.UUID, authorUsername string) error {
	kept := m.follows[:0]
	for _, follow := range m.follows {
		author, ok := m.users[follow.AuthorID]
		if follow.UserID == userID && ok && author.Username == authorUsername {
			continue
		}
		kept = append(kept, follow)
	}
	m.follows = kept
	return nil
}

func (m *memStore) Exists(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	for _, follow := range m.follows {
		if follow.UserID == userID && follow.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) FindFollowerUsernames(ctx context.Context, authorID uuid.UUID) ([]string, error) {
	var usernames []string
	for _, follow := range m.follows {
		if follow.AuthorID == authorID {
			if user, ok := m.users[follow.UserID]; ok {
				usernames = append(usernames, user.Username)
			}
		}
	}
	sort.Strings(usernames)
	return usernames, nil
}

func (m *memStore) FindFollowingUsernames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var usernames []string
	for _, follow := range m.follows {
		if follow.UserID == userID {
			if user, ok := m.users[follow.AuthorID]; ok {
				usernames = append(usernames, user.Username)
			}
		}
	}
	sort.Strings(usernames)
	return usernames, nil
}

// fakeCache is an in-memory redisrepo.Default. TTLs are accepted and
// ignored; tests drive expiry through explicit deletes.
type fakeCache struct {
	data map[string]string
}

var _ redisrepo.Default = (*fakeCache)(nil)

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return err
		}
		f.data[key] = string(encoded)
	}
	return nil
}

func (f *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = string(encoded)
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	value, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	deleted := int64(0)
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			deleted++
		}
	}
	return redis.NewIntResult(deleted, nil)
}

func (f *fakeCache) Keys(ctx context.Context, pattern string) *redis.StringSliceCmd {
	var keys []string
	for key := range f.data {
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	return redis.NewStringSliceResult(keys, nil)
}

// userRepoAdapter renames the memStore user methods that collide with the
// group repo's on the same struct.
type userRepoAdapter struct {
	store *memStore
}

var _ postgres.User = userRepoAdapter{}

func (a userRepoAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return a.store.FindUserByID(ctx, id)
}

func (a userRepoAdapter) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return a.store.FindByUsername(ctx, username)
}

func (a userRepoAdapter) FindAll(ctx context.Context) ([]*model.User, error) {
	return a.store.FindAllUsers(ctx)
}

// commentRepoAdapter does the same for the comment repo's Create.
type commentRepoAdapter struct {
	store *memStore
}

var _ postgres.Comment = commentRepoAdapter{}

func (a commentRepoAdapter) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	return a.store.CreateComment(comment), nil
}

func (a commentRepoAdapter) FindPostComments(ctx context.Context, postID int64) ([]*model.PostComment, error) {
	return a.store.FindPostComments(ctx, postID)
}

func newTestRepository(store *memStore, cache *fakeCache) *repository.Repository {
	return &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			Post:    store,
			Comment: commentRepoAdapter{store: store},
			Group:   store,
			User:    userRepoAdapter{store: store},
			Follow:  store,
		},
		Redis: &redisrepo.RedisRepository{Default: cache},
	}
}
