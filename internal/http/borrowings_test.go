package http

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libraryhub/library/internal/entities"
)

func TestBorrowingLifecycle(t *testing.T) {
	env := setupTestRouter(t)
	user := mustCreate(t, env, "/api/users", map[string]string{"name": "John Doe", "email": "john@example.com"})

	book := mustCreate(t, env, "/api/books", map[string]string{"title": "1984", "author": "Orwell", "isbn": "123"})
	bookID := idOf(t, book)
	assert.Equal(t, true, book["available"])

	borrowing := mustCreate(t, env, "/api/borrowings", map[string]uint{"user_id": idOf(t, user), "book_id": bookID})
	assert.Equal(t, "borrowed", borrowing["status"])
	assert.Nil(t, borrowing["returned_date"])
	borrowingID := idOf(t, borrowing)

	w := env.do(t, http.MethodPost, "/api/borrowings", map[string]uint{"user_id": idOf(t, user), "book_id": bookID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Book is not available"}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/books/"+itoa(bookID), nil)
	assert.Equal(t, false, decode[map[string]any](t, w)["available"])

	w = env.do(t, http.MethodPut, "/api/borrowings/"+itoa(borrowingID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	returned := decode[map[string]any](t, w)
	assert.Equal(t, "returned", returned["status"])
	assert.NotNil(t, returned["returned_date"])

	w = env.do(t, http.MethodGet, "/api/books/"+itoa(bookID), nil)
	assert.Equal(t, true, decode[map[string]any](t, w)["available"])

	w = env.do(t, http.MethodPut, "/api/borrowings/"+itoa(borrowingID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Borrowing already returned", errorMessage(t, w))

	var count int64
	require.NoError(t, env.db.DB.Model(&entities.Borrowing{}).Where("book_id = ?", bookID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBorrowingsController_Borrow(t *testing.T) {
	env := setupTestRouter(t)
	user := mustCreate(t, env, "/api/users", map[string]string{"name": "Jane", "email": "jane@example.com"})
	book := mustCreate(t, env, "/api/books", map[string]string{"title": "Emma", "author": "Austen"})

	t.Run("unknown book", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/borrowings", map[string]uint{"user_id": idOf(t, user), "book_id": 999})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Book not found", errorMessage(t, w))
	})

	t.Run("unknown user leaves the book available", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/borrowings", map[string]uint{"user_id": 999, "book_id": idOf(t, book)})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", errorMessage(t, w))

		w = env.do(t, http.MethodGet, "/api/books/"+itoa(idOf(t, book)), nil)
		assert.Equal(t, true, decode[map[string]any](t, w)["available"])
	})

	t.Run("missing ids", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/borrowings", map[string]uint{"user_id": idOf(t, user)})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "book_id is required", errorMessage(t, w))
	})

	t.Run("wrong type", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/borrowings", `{"user_id":"one","book_id":1}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBorrowingsController_Return(t *testing.T) {
	env := setupTestRouter(t)

	t.Run("unknown borrowing", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/borrowings/999", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Active borrowing not found", errorMessage(t, w))
	})

	t.Run("invalid id", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/borrowings/xyz", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBorrowingsController_ListAndGet(t *testing.T) {
	env := setupTestRouter(t)
	user := mustCreate(t, env, "/api/users", map[string]string{"name": "Bob Johnson", "email": "bob@example.com"})
	first := mustCreate(t, env, "/api/books", map[string]string{"title": "Dune", "author": "Herbert"})
	second := mustCreate(t, env, "/api/books", map[string]string{"title": "Emma", "author": "Austen"})

	b1 := mustCreate(t, env, "/api/borrowings", map[string]uint{"user_id": idOf(t, user), "book_id": idOf(t, first)})
	b2 := mustCreate(t, env, "/api/borrowings", map[string]uint{"user_id": idOf(t, user), "book_id": idOf(t, second)})

	w := env.do(t, http.MethodGet, "/api/borrowings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]entities.BorrowingDetail](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, idOf(t, b2), list[0].ID, "most recent first")
	assert.Equal(t, idOf(t, b1), list[1].ID)
	assert.Equal(t, "Bob Johnson", list[0].UserName)
	assert.Equal(t, "Emma", list[0].BookTitle)
	assert.Equal(t, "Austen", list[0].Author)

	w = env.do(t, http.MethodGet, "/api/borrowings/"+itoa(idOf(t, b1)), nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[entities.BorrowingDetail](t, w)
	assert.Equal(t, "Dune", detail.BookTitle)
	assert.Equal(t, entities.BorrowingStatusBorrowed, detail.Status)

	w = env.do(t, http.MethodGet, "/api/borrowings/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Borrowing not found", errorMessage(t, w))
}

func TestBorrowingsController_ConcurrentBorrow(t *testing.T) {
	env := setupTestRouter(t)
	book := mustCreate(t, env, "/api/books", map[string]string{"title": "1984", "author": "Orwell"})
	bookID := idOf(t, book)

	const borrowers = 8
	userIDs := make([]uint, borrowers)
	for i := range userIDs {
		user := mustCreate(t, env, "/api/users", map[string]string{"name": "Member", "email": "member" + itoa(uint(i)) + "@example.com"})
		userIDs[i] = idOf(t, user)
	}

	codes := make([]int, borrowers)
	var wg sync.WaitGroup
	for i := range userIDs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = env.do(t, http.MethodPost, "/api/borrowings", map[string]uint{"user_id": userIDs[i], "book_id": bookID}).Code
		}(i)
	}
	wg.Wait()

	created, rejected := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusBadRequest:
			rejected++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, borrowers-1, rejected)

	var open int64
	require.NoError(t, env.db.DB.Model(&entities.Borrowing{}).
		Where("book_id = ? AND status = ?", bookID, entities.BorrowingStatusBorrowed).
		Count(&open).Error)
	assert.Equal(t, int64(1), open)
}

func TestBorrowingsController_History(t *testing.T) {
	env := setupTestRouter(t)
	user := mustCreate(t, env, "/api/users", map[string]string{"name": "Jane", "email": "jane@example.com"})
	book := mustCreate(t, env, "/api/books", map[string]string{"title": "Emma", "author": "Austen"})
	borrowing := mustCreate(t, env, "/api/borrowings", map[string]uint{"user_id": idOf(t, user), "book_id": idOf(t, book)})
	id := itoa(idOf(t, borrowing))

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, "/api/borrowings/"+id, nil).Code)
	require.Equal(t, http.StatusNotFound, env.do(t, http.MethodPut, "/api/borrowings/"+id, nil).Code)
	env.audit.Wait()

	w := env.do(t, http.MethodGet, "/api/borrowings/"+id+"/audit", nil)

	require.Equal(t, http.StatusOK, w.Code)
	events := decode[[]entities.AuditEvent](t, w)
	require.Len(t, events, 3)

	statuses := map[entities.AuditStatus]int{}
	for _, e := range events {
		statuses[e.Status]++
	}
	assert.Equal(t, 2, statuses[entities.AuditStatusSuccess])
	assert.Equal(t, 1, statuses[entities.AuditStatusFailed])
}
