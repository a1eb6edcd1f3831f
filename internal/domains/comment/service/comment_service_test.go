package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/comment"
	"blog-backend/internal/shared/pagination"
)

// fakeCommentRepo mimics the postgres repository's contract including the
// back-reference it keeps on the owning post.
type fakeCommentRepo struct {
	comments map[uuid.UUID]*comment.Comment
	postRefs map[uuid.UUID][]uuid.UUID // postID -> comment ids
}

func newFakeCommentRepo(postIDs ...uuid.UUID) *fakeCommentRepo {
	refs := make(map[uuid.UUID][]uuid.UUID)
	for _, id := range postIDs {
		refs[id] = []uuid.UUID{}
	}
	return &fakeCommentRepo{
		comments: make(map[uuid.UUID]*comment.Comment),
		postRefs: refs,
	}
}

func (f *fakeCommentRepo) Create(_ context.Context, c *comment.Comment) error {
	refs, ok := f.postRefs[c.PostID]
	if !ok {
		return comment.ErrPostNotFound
	}
	cp := *c
	f.comments[c.ID] = &cp
	f.postRefs[c.PostID] = append(refs, c.ID)
	return nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*comment.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, comment.ErrCommentNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) ListByPost(_ context.Context, postID uuid.UUID, offset, limit int) ([]comment.Comment, int, error) {
	refs, ok := f.postRefs[postID]
	if !ok {
		return nil, 0, comment.ErrPostNotFound
	}
	total := len(refs)
	if offset >= total {
		return []comment.Comment{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := make([]comment.Comment, 0, end-offset)
	for _, id := range refs[offset:end] {
		page = append(page, *f.comments[id])
	}
	return page, total, nil
}

func (f *fakeCommentRepo) Update(_ context.Context, c *comment.Comment) error {
	if _, ok := f.comments[c.ID]; !ok {
		return comment.ErrCommentNotFound
	}
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, postID, commentID uuid.UUID) error {
	if _, ok := f.comments[commentID]; !ok {
		return comment.ErrCommentNotFound
	}
	delete(f.comments, commentID)
	refs := f.postRefs[postID]
	for i, id := range refs {
		if id == commentID {
			f.postRefs[postID] = append(refs[:i], refs[i+1:]...)
			break
		}
	}
	return nil
}

func TestCreateAttachesToPost(t *testing.T) {
	postID := uuid.New()
	repo := newFakeCommentRepo(postID)
	svc := NewCommentService(repo)

	c, err := svc.Create(context.Background(), comment.CreateCommentRequest{
		Content: "great read",
		Author:  "Charles",
		PostID:  postID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, postID, c.PostID)
	assert.Equal(t, []uuid.UUID{c.ID}, repo.postRefs[postID])
}

func TestCreateMissingPost(t *testing.T) {
	svc := NewCommentService(newFakeCommentRepo())

	_, err := svc.Create(context.Background(), comment.CreateCommentRequest{
		Content: "great read",
		Author:  "Charles",
		PostID:  uuid.NewString(),
	})
	assert.ErrorIs(t, err, comment.ErrPostNotFound)
}

func TestCreateBadPostID(t *testing.T) {
	svc := NewCommentService(newFakeCommentRepo())

	_, err := svc.Create(context.Background(), comment.CreateCommentRequest{
		Content: "great read",
		Author:  "Charles",
		PostID:  "not-a-uuid",
	})
	assert.ErrorIs(t, err, comment.ErrPostNotFound)
}

func TestListByPostPaginatesInOrder(t *testing.T) {
	postID := uuid.New()
	repo := newFakeCommentRepo(postID)
	svc := NewCommentService(repo)

	var created []uuid.UUID
	for i := 0; i < 12; i++ {
		c, err := svc.Create(context.Background(), comment.CreateCommentRequest{
			Content: "c",
			Author:  "Charles",
			PostID:  postID.String(),
		})
		require.NoError(t, err)
		created = append(created, c.ID)
	}

	resp, err := svc.ListByPost(context.Background(), postID, pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 12, resp.TotalComments)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, 2, resp.CurrentPage)
	require.Len(t, resp.Comments, 2)
	assert.Equal(t, created[10], resp.Comments[0].ID, "creation order must hold across pages")
}

func TestUpdateComment(t *testing.T) {
	postID := uuid.New()
	svc := NewCommentService(newFakeCommentRepo(postID))
	c, err := svc.Create(context.Background(), comment.CreateCommentRequest{
		Content: "first",
		Author:  "Charles",
		PostID:  postID.String(),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), c.ID, comment.UpdateCommentRequest{Content: "edited"})
	require.NoError(t, err)

	assert.Equal(t, "edited", updated.Content)
	assert.Equal(t, "Charles", updated.Author, "author stays when the update omits it")
}

func TestDeleteThenDeleteAgain(t *testing.T) {
	postID := uuid.New()
	repo := newFakeCommentRepo(postID)
	svc := NewCommentService(repo)
	c, err := svc.Create(context.Background(), comment.CreateCommentRequest{
		Content: "bye",
		Author:  "Charles",
		PostID:  postID.String(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), postID, c.ID))
	assert.Empty(t, repo.postRefs[postID], "the post's comment list must drop the id")

	err = svc.Delete(context.Background(), postID, c.ID)
	assert.ErrorIs(t, err, comment.ErrCommentNotFound)
}
