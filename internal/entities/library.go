package entities

import "time"

type BorrowingStatus string

const (
	BorrowingStatusBorrowed BorrowingStatus = "borrowed"
	BorrowingStatusReturned BorrowingStatus = "returned"
)

type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:512;not null" json:"title"`
	Author    string    `gorm:"size:256;not null" json:"author"`
	ISBN      *string   `gorm:"uniqueIndex;size:32" json:"isbn"` // NULL when omitted so several books may lack one
	Available bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt time.Time `json:"created_at"`
}

// User is a library member. Members borrow books; there is no login.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone     string    `gorm:"size:32" json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Borrowing struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"index;not null" json:"user_id"`
	BookID       uint            `gorm:"index;not null" json:"book_id"`
	BorrowedDate time.Time       `gorm:"index;not null" json:"borrowed_date"`
	ReturnedDate *time.Time      `json:"returned_date"`
	Status       BorrowingStatus `gorm:"size:20;index;not null;default:'borrowed'" json:"status"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Book Book `gorm:"foreignKey:BookID" json:"-"`
}

// BorrowingDetail is a borrowing joined with its member name and book title/author.
type BorrowingDetail struct {
	ID           uint            `json:"id"`
	UserID       uint            `json:"user_id"`
	BookID       uint            `json:"book_id"`
	BorrowedDate time.Time       `json:"borrowed_date"`
	ReturnedDate *time.Time      `json:"returned_date"`
	Status       BorrowingStatus `json:"status"`
	UserName     string          `json:"user_name"`
	BookTitle    string          `json:"book_title"`
	Author       string          `json:"author"`
}
