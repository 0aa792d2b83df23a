package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libraryhub/internal/domain"
)

type BooksController struct {
	books BookService
}

func NewBooksController(books BookService) *BooksController {
	return &BooksController{books: books}
}

// List handles GET /api/books
// ?q= searches title, author and ISBN; ?isbn= returns the single matching book.
func (bc *BooksController) List(c *gin.Context) {
	ctx := c.Request.Context()

	if isbn := c.Query("isbn"); isbn != "" {
		book, err := bc.books.FindByISBN(ctx, isbn)
		if err != nil {
			respondResourceError(c, err, "find book by isbn")
			return
		}
		c.JSON(http.StatusOK, book)
		return
	}

	var (
		books []domain.Book
		err   error
	)
	if q := c.Query("q"); q != "" {
		books, err = bc.books.Search(ctx, q)
	} else {
		books, err = bc.books.List(ctx)
	}
	if err != nil {
		respondResourceError(c, err, "list books")
		return
	}

	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// Get handles GET /api/books/:id
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := bc.books.Get(c.Request.Context(), id)
	if err != nil {
		respondResourceError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Create handles POST /api/books
func (bc *BooksController) Create(c *gin.Context) {
	var book domain.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		respondBadRequest(c, "invalid book")
		return
	}
	created, err := bc.books.Create(c.Request.Context(), book)
	if err != nil {
		respondResourceError(c, err, "create book")
		return
	}
	respondCreated(c, created)
}

// Update handles PATCH /api/books/:id
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var patch domain.BookPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid book patch")
		return
	}
	book, err := bc.books.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondResourceError(c, err, "update book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Delete handles DELETE /api/books/:id
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := bc.books.Delete(c.Request.Context(), id); err != nil {
		respondResourceError(c, err, "delete book")
		return
	}
	c.Status(http.StatusNoContent)
}
