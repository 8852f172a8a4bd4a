package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{
		store: store,
	}
}

type createBookRequest struct {
	Title  string `json:"title" binding:"required,notblank,max=255"`
	Author string `json:"author" binding:"required,notblank,max=255"`
	ISBN   string `json:"isbn" binding:"max=20"`
}

// ListBooks handles GET /api/books
func (controller *BooksController) ListBooks(c *gin.Context) {
	books, err := controller.store.ListBooks(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, books)
}

// GetBook handles GET /api/books/:id
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.store.GetBookByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// CreateBook handles POST /api/books
func (controller *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := controller.store.CreateBook(c.Request.Context(), req.Title, req.Author, req.ISBN)
	if err != nil {
		respondDomainError(c, err, "create book")
		return
	}
	c.JSON(http.StatusCreated, book)
}
