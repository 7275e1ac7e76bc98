package users

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateEmail    = errors.New("a user with that email already exists")
	ErrDuplicateName     = errors.New("a user with that name already exists")
	QueryTimeoutDuration = time.Second * 5
)

type User struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Password             password  `json:"-"`
	IsAdmin              bool      `json:"is_admin"`
	RefreshToken         string    `json:"-"`
	ResetPasswordToken   string    `json:"-"`
	ResetPasswordExpires time.Time `json:"-"`
	PasswordLastChanged  time.Time `json:"-"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Role maps the admin flag onto the role claim carried in tokens.
func (u *User) Role() string {
	if u.IsAdmin {
		return "admin"
	}
	return "user"
}

// password keeps the plaintext out of reach and the hash out of JSON.
type password struct {
	text *string
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.text = &text
	p.hash = hash

	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

func (p *password) Hash() []byte {
	return p.hash
}
