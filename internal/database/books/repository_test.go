package books

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libraryhub/library/internal/database"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewSQLiteDatabase(filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB)
}

func TestRepository_CreateBook(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	book, err := repo.CreateBook(ctx, "1984", "Orwell", "123")

	require.NoError(t, err)
	assert.NotZero(t, book.ID)
	assert.Equal(t, "1984", book.Title)
	assert.Equal(t, "Orwell", book.Author)
	require.NotNil(t, book.ISBN)
	assert.Equal(t, "123", *book.ISBN)
	assert.True(t, book.Available)
}

func TestRepository_CreateBook_DuplicateISBN(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.CreateBook(ctx, "1984", "Orwell", "123")
	require.NoError(t, err)

	_, err = repo.CreateBook(ctx, "Animal Farm", "Orwell", "123")

	assert.ErrorIs(t, err, ErrDuplicateISBN)
}

func TestRepository_CreateBook_BlankISBNsDoNotCollide(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first, err := repo.CreateBook(ctx, "Untitled", "Anon", "")
	require.NoError(t, err)
	second, err := repo.CreateBook(ctx, "Untitled II", "Anon", "  ")
	require.NoError(t, err)

	assert.Nil(t, first.ISBN)
	assert.Nil(t, second.ISBN)
}

func TestRepository_ListBooks(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	books, err := repo.ListBooks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)

	_, err = repo.CreateBook(ctx, "B", "Author", "")
	require.NoError(t, err)
	_, err = repo.CreateBook(ctx, "A", "Author", "")
	require.NoError(t, err)

	books, err = repo.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Less(t, books[0].ID, books[1].ID)
	assert.Equal(t, "B", books[0].Title)
}

func TestRepository_GetBookByID(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created, err := repo.CreateBook(ctx, "Dune", "Herbert", "")
	require.NoError(t, err)

	book, err := repo.GetBookByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)

	_, err = repo.GetBookByID(ctx, 999)
	assert.ErrorIs(t, err, ErrBookNotFound)
}
