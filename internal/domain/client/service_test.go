package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/atelier/internal/apperr"
	"github.com/rpggio/atelier/internal/domain/client"
	"github.com/rpggio/atelier/internal/repository"
	"github.com/rpggio/atelier/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClientService_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ClientRepository{}
	repo.On("Create", ctx, mock.MatchedBy(func(c *client.Client) bool {
		return c.Name == "Acme" && c.Currency == "USD" && c.Status == client.StatusActive
	})).Return(nil)

	svc := client.NewService(repo, nil)
	c, err := svc.Create(ctx, client.CreateRequest{Name: "  Acme "})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	repo.AssertExpectations(t)
}

func TestClientService_CreateValidation(t *testing.T) {
	svc := client.NewService(&mocks.ClientRepository{}, nil)

	_, err := svc.Create(context.Background(), client.CreateRequest{Name: "", TaxRate: 120})
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "required", vErr.Fields["name"])
	require.Equal(t, "out_of_range", vErr.Fields["tax_rate"])
}

func TestClientService_DuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ClientRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrConflict)

	_, err := client.NewService(repo, nil).Create(ctx, client.CreateRequest{Name: "Acme"})
	require.ErrorIs(t, err, client.ErrDuplicateName)
	require.Equal(t, apperr.CodeValidation, apperr.From(err).Code)
}

func TestClientService_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ClientRepository{}
	repo.On("Get", ctx, "c1").Return(&client.Client{ID: "c1", Name: "Acme", Currency: "USD", Status: client.StatusActive}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	rate := 19.0
	archived := client.StatusArchived
	c, err := client.NewService(repo, nil).Update(ctx, client.UpdateRequest{ID: "c1", TaxRate: &rate, Status: &archived})
	require.NoError(t, err)
	require.Equal(t, "Acme", c.Name)
	require.Equal(t, 19.0, c.TaxRate)
	require.Equal(t, client.StatusArchived, c.Status)
}

func TestClientService_GetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ClientRepository{}
	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := client.NewService(repo, nil).Get(ctx, "missing")
	require.ErrorIs(t, err, client.ErrClientNotFound)
}

func TestClientService_DeleteRemovesFilesBestEffort(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ClientRepository{}
	docs := &mocks.DocumentPaths{}
	files := &mocks.FileStore{}

	docs.On("PathsForClient", ctx, "c1").Return([]string{"/docs/a", "/docs/b"}, nil)
	repo.On("Delete", ctx, "c1").Return(nil)
	files.On("Delete", "/docs/a").Return(errors.New("permission denied"))
	files.On("Delete", "/docs/b").Return(nil)

	svc := client.NewService(repo, nil).WithDocumentCleanup(docs, files)
	require.NoError(t, svc.Delete(ctx, "c1"))
	files.AssertExpectations(t)
}

func TestClientService_DeleteMissingKeepsFiles(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ClientRepository{}
	docs := &mocks.DocumentPaths{}
	files := &mocks.FileStore{}

	docs.On("PathsForClient", ctx, "c1").Return([]string{}, nil)
	repo.On("Delete", ctx, "c1").Return(repository.ErrNotFound)

	svc := client.NewService(repo, nil).WithDocumentCleanup(docs, files)
	require.ErrorIs(t, svc.Delete(ctx, "c1"), client.ErrClientNotFound)
	files.AssertNotCalled(t, "Delete", mock.Anything)
}
