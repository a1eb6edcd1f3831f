package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/shared/pagination"
	"blog-backend/pkg/jwt"
)

type fakeAuthorRepo struct {
	authors map[uuid.UUID]*author.Author
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{authors: make(map[uuid.UUID]*author.Author)}
}

func (f *fakeAuthorRepo) Create(_ context.Context, a *author.Author) error {
	for _, existing := range f.authors {
		if existing.Email == a.Email {
			return author.ErrEmailAlreadyExists
		}
	}
	cp := *a
	f.authors[a.ID] = &cp
	return nil
}

func (f *fakeAuthorRepo) FindByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAuthorRepo) FindByEmail(_ context.Context, email string) (*author.Author, error) {
	for _, a := range f.authors {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, author.ErrAuthorNotFound
}

func (f *fakeAuthorRepo) FindByGoogleID(_ context.Context, googleID string) (*author.Author, error) {
	for _, a := range f.authors {
		if a.GoogleID != nil && *a.GoogleID == googleID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, author.ErrAuthorNotFound
}

func (f *fakeAuthorRepo) Update(_ context.Context, a *author.Author) error {
	if _, ok := f.authors[a.ID]; !ok {
		return author.ErrAuthorNotFound
	}
	cp := *a
	f.authors[a.ID] = &cp
	return nil
}

func (f *fakeAuthorRepo) UpdateAvatar(_ context.Context, id uuid.UUID, avatar string) error {
	a, ok := f.authors[id]
	if !ok {
		return author.ErrAuthorNotFound
	}
	a.Avatar = &avatar
	return nil
}

func (f *fakeAuthorRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.authors[id]; !ok {
		return author.ErrAuthorNotFound
	}
	delete(f.authors, id)
	return nil
}

func (f *fakeAuthorRepo) DeleteAll(_ context.Context) error {
	f.authors = make(map[uuid.UUID]*author.Author)
	return nil
}

func (f *fakeAuthorRepo) List(_ context.Context, offset, limit int) ([]author.Author, int, error) {
	all := make([]author.Author, 0, len(f.authors))
	for _, a := range f.authors {
		all = append(all, *a)
	}
	total := len(all)
	if offset >= total {
		return []author.Author{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

type fakeEmailService struct {
	fail        bool
	welcomeSent []string
	newPostSent []string
}

func (f *fakeEmailService) SendWelcomeEmail(_ context.Context, to, _ string) error {
	if f.fail {
		return errors.New("relay refused")
	}
	f.welcomeSent = append(f.welcomeSent, to)
	return nil
}

func (f *fakeEmailService) SendNewPostNotification(_ context.Context, to, _, _ string) error {
	if f.fail {
		return errors.New("relay refused")
	}
	f.newPostSent = append(f.newPostSent, to)
	return nil
}

func newTestService() (author.Service, *fakeAuthorRepo, *fakeEmailService, *jwt.Manager) {
	repo := newFakeAuthorRepo()
	mail := &fakeEmailService{}
	manager := jwt.NewManager("test-secret", jwt.DefaultTTL)
	return NewAuthorService(repo, manager, mail), repo, mail, manager
}

func registerReq() author.RegisterRequest {
	return author.RegisterRequest{
		Email:     "Ada@Example.com",
		Password:  "hunter22",
		Name:      "Ada",
		Surname:   "Lovelace",
		BirthDate: "1815-12-10",
	}
}

func TestRegisterPersistsAndSendsWelcome(t *testing.T) {
	svc, repo, mail, _ := newTestService()

	require.NoError(t, svc.Register(context.Background(), registerReq()))

	require.Len(t, repo.authors, 1)
	for _, a := range repo.authors {
		assert.Equal(t, "ada@example.com", a.Email, "email must be normalized")
		require.NotNil(t, a.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*a.PasswordHash), []byte("hunter22")))
	}
	assert.Equal(t, []string{"ada@example.com"}, mail.welcomeSent)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestService()

	require.NoError(t, svc.Register(context.Background(), registerReq()))
	err := svc.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, author.ErrEmailAlreadyExists)
}

func TestRegisterEmailFailureLeavesAccountBehind(t *testing.T) {
	svc, repo, mail, _ := newTestService()
	mail.fail = true

	err := svc.Register(context.Background(), registerReq())

	assert.ErrorIs(t, err, author.ErrEmailDeliveryFailed)
	assert.Len(t, repo.authors, 1, "the row must survive the mail failure")
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _, _, manager := newTestService()
	require.NoError(t, svc.Register(context.Background(), registerReq()))

	token, err := svc.Login(context.Background(), author.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _ := newTestService()
	require.NoError(t, svc.Register(context.Background(), registerReq()))

	_, err := svc.Login(context.Background(), author.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, author.ErrInvalidCredentials)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Login(context.Background(), author.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, author.ErrInvalidCredentials,
		"unknown email and wrong password must be indistinguishable")
}

func TestLoginProviderOnlyAccount(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.LoginWithGoogle(context.Background(), "g-123", "eve@example.com", "Eve")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), author.LoginRequest{
		Email:    "eve@example.com",
		Password: "anything",
	})
	assert.ErrorIs(t, err, author.ErrInvalidCredentials)
}

func TestLoginWithGoogleCreatesThenReuses(t *testing.T) {
	svc, repo, _, manager := newTestService()

	token, err := svc.LoginWithGoogle(context.Background(), "g-123", "eve@example.com", "Eve")
	require.NoError(t, err)
	firstID, err := manager.Verify(token)
	require.NoError(t, err)
	require.Len(t, repo.authors, 1)
	require.Nil(t, repo.authors[firstID].PasswordHash)

	token, err = svc.LoginWithGoogle(context.Background(), "g-123", "eve@example.com", "Eve")
	require.NoError(t, err)
	secondID, err := manager.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, firstID, secondID, "second provider login must reuse the account")
	assert.Len(t, repo.authors, 1)
}

func TestListPaginates(t *testing.T) {
	svc, _, _, _ := newTestService()
	for i := 0; i < 13; i++ {
		_, err := svc.Create(context.Background(), author.CreateAuthorRequest{
			Name:  "Author",
			Email: uuid.NewString() + "@example.com",
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 13, resp.TotalAuthors)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, 2, resp.CurrentPage)
	assert.Len(t, resp.Authors, 3)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _, _ := newTestService()
	created, err := svc.Create(context.Background(), author.CreateAuthorRequest{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), created.ID, author.UpdateProfileRequest{
		Name:    "Ada King",
		Surname: "Lovelace",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada King", updated.Name)
	require.NotNil(t, updated.Surname)
	assert.Equal(t, "Lovelace", *updated.Surname)
}

func TestDeleteMissingAuthor(t *testing.T) {
	svc, _, _, _ := newTestService()
	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}
