package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/post"
	"blog-backend/internal/shared/pagination"
)

type fakePostRepo struct {
	posts map[uuid.UUID]*post.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uuid.UUID]*post.Post)}
}

func (f *fakePostRepo) Create(_ context.Context, p *post.Post) error {
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakePostRepo) FindByID(_ context.Context, id uuid.UUID) (*post.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) List(_ context.Context, filter post.ListFilter) ([]post.Post, int, error) {
	matched := make([]post.Post, 0)
	for _, p := range f.posts {
		if filter.AuthorID != uuid.Nil && p.AuthorID != filter.AuthorID {
			continue
		}
		matched = append(matched, *p)
	}
	total := len(matched)
	if filter.Offset >= total {
		return []post.Post{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func (f *fakePostRepo) Update(_ context.Context, p *post.Post) error {
	if _, ok := f.posts[p.ID]; !ok {
		return post.ErrPostNotFound
	}
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakePostRepo) UpdateCover(_ context.Context, id uuid.UUID, cover string) error {
	p, ok := f.posts[id]
	if !ok {
		return post.ErrPostNotFound
	}
	p.Cover = &cover
	return nil
}

func (f *fakePostRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.posts[id]; !ok {
		return post.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) DeleteAll(_ context.Context) error {
	f.posts = make(map[uuid.UUID]*post.Post)
	return nil
}

type fakeAuthorFinder struct {
	authors map[uuid.UUID]*author.Author
}

func (f *fakeAuthorFinder) Create(_ context.Context, a *author.Author) error { return nil }
func (f *fakeAuthorFinder) FindByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return a, nil
}
func (f *fakeAuthorFinder) FindByEmail(context.Context, string) (*author.Author, error) {
	return nil, author.ErrAuthorNotFound
}
func (f *fakeAuthorFinder) FindByGoogleID(context.Context, string) (*author.Author, error) {
	return nil, author.ErrAuthorNotFound
}
func (f *fakeAuthorFinder) Update(context.Context, *author.Author) error          { return nil }
func (f *fakeAuthorFinder) UpdateAvatar(context.Context, uuid.UUID, string) error { return nil }
func (f *fakeAuthorFinder) Delete(context.Context, uuid.UUID) error               { return nil }
func (f *fakeAuthorFinder) DeleteAll(context.Context) error                       { return nil }
func (f *fakeAuthorFinder) List(context.Context, int, int) ([]author.Author, int, error) {
	return nil, 0, nil
}

type fakeMailer struct {
	fail bool
	sent []string
}

func (f *fakeMailer) SendWelcomeEmail(context.Context, string, string) error { return nil }
func (f *fakeMailer) SendNewPostNotification(_ context.Context, to, _, _ string) error {
	if f.fail {
		return errors.New("relay refused")
	}
	f.sent = append(f.sent, to)
	return nil
}

func newTestPostService() (post.Service, *fakePostRepo, *fakeAuthorFinder, *fakeMailer, uuid.UUID) {
	repo := newFakePostRepo()
	ownerID := uuid.New()
	finder := &fakeAuthorFinder{authors: map[uuid.UUID]*author.Author{
		ownerID: {ID: ownerID, Email: "ada@example.com", Name: "Ada"},
	}}
	mail := &fakeMailer{}
	return NewPostService(repo, finder, mail), repo, finder, mail, ownerID
}

func createReq(authorID uuid.UUID) post.CreatePostRequest {
	return post.CreatePostRequest{
		Category: "tech",
		Title:    "Notes on the Analytical Engine",
		ReadTime: post.ReadTime{Value: 5, Unit: "minute"},
		Author:   authorID.String(),
		Content:  "body",
	}
}

func TestCreateNotifiesAuthor(t *testing.T) {
	svc, repo, _, mail, ownerID := newTestPostService()

	p, err := svc.Create(context.Background(), createReq(ownerID))
	require.NoError(t, err)

	assert.Len(t, repo.posts, 1)
	assert.Equal(t, []string{"ada@example.com"}, mail.sent)
	assert.NotNil(t, p.Comments, "a new post must carry an empty comment list")
}

func TestCreateUnknownAuthorKeepsPost(t *testing.T) {
	svc, repo, _, _, _ := newTestPostService()

	_, err := svc.Create(context.Background(), createReq(uuid.New()))

	assert.ErrorIs(t, err, post.ErrPostAuthorNotFound)
	assert.Len(t, repo.posts, 1, "the row must survive the failed notification lookup")
}

func TestCreateMailFailureKeepsPost(t *testing.T) {
	svc, repo, _, mail, ownerID := newTestPostService()
	mail.fail = true

	_, err := svc.Create(context.Background(), createReq(ownerID))

	assert.ErrorIs(t, err, post.ErrNotificationFailed)
	assert.Len(t, repo.posts, 1)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	svc, _, _, _, ownerID := newTestPostService()
	p, err := svc.Create(context.Background(), createReq(ownerID))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), p.ID, uuid.New(), createReq(ownerID))
	assert.ErrorIs(t, err, post.ErrNotOwner)

	updated, err := svc.Update(context.Background(), p.ID, ownerID, createReq(ownerID))
	require.NoError(t, err)
	assert.Equal(t, "Notes on the Analytical Engine", updated.Title)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	svc, repo, _, _, ownerID := newTestPostService()
	p, err := svc.Create(context.Background(), createReq(ownerID))
	require.NoError(t, err)

	err = svc.Delete(context.Background(), p.ID, uuid.New())
	assert.ErrorIs(t, err, post.ErrNotOwner)
	assert.Len(t, repo.posts, 1)

	require.NoError(t, svc.Delete(context.Background(), p.ID, ownerID))
	assert.Empty(t, repo.posts)
}

func TestSetCoverRequiresOwnership(t *testing.T) {
	svc, repo, _, _, ownerID := newTestPostService()
	p, err := svc.Create(context.Background(), createReq(ownerID))
	require.NoError(t, err)

	err = svc.SetCover(context.Background(), p.ID, uuid.New(), "http://img/cover.png")
	assert.ErrorIs(t, err, post.ErrNotOwner)

	require.NoError(t, svc.SetCover(context.Background(), p.ID, ownerID, "http://img/cover.png"))
	require.NotNil(t, repo.posts[p.ID].Cover)
	assert.Equal(t, "http://img/cover.png", *repo.posts[p.ID].Cover)
}

func TestGetMissingPost(t *testing.T) {
	svc, _, _, _, _ := newTestPostService()
	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, post.ErrPostNotFound)
}

func TestListByAuthorPaginates(t *testing.T) {
	svc, _, _, _, ownerID := newTestPostService()
	for i := 0; i < 12; i++ {
		_, err := svc.Create(context.Background(), createReq(ownerID))
		require.NoError(t, err)
	}

	resp, err := svc.ListByAuthor(context.Background(), ownerID, pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 12, resp.TotalPosts)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, 2, resp.CurrentPage)
	assert.Len(t, resp.Posts, 2)
}
