package customer

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
)

var (
	ErrNotFound        = fmt.Errorf("customer %w", apperror.ErrNotFound)
	ErrInvalidCustomer = errors.New("invalid customer")
	ErrDuplicateName   = errors.New("customer with this name already exists")
)

type Customer struct {
	ID        uuid.UUID
	Name      string
	Phone     string
	Notes     string
	CreatedAt time.Time
}

type CreateParams struct {
	Name  string
	Phone string
	Notes string
}
