package customer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/customer"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    customer.CreateParams
		setupMock func(m *customer.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: customer.CreateParams{Name: "  Ravi Kumar ", Phone: "99999"},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().GetCustomerByName(gomock.Any(), "Ravi Kumar").Return(nil, customer.ErrNotFound)
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *customer.Customer) error {
						c.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "EmptyName",
			params:  customer.CreateParams{Name: "   "},
			wantErr: customer.ErrInvalidCustomer,
		},
		{
			name:   "DuplicateName",
			params: customer.CreateParams{Name: "Ravi Kumar"},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().GetCustomerByName(gomock.Any(), "Ravi Kumar").
					Return(&customer.Customer{ID: uuid.New(), Name: "Ravi Kumar"}, nil)
			},
			wantErr: customer.ErrDuplicateName,
		},
		{
			name:   "LookupError",
			params: customer.CreateParams{Name: "Ravi Kumar"},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().GetCustomerByName(gomock.Any(), "Ravi Kumar").Return(nil, errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := customer.NewService(repo).Create(context.Background(), tt.params)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				if apperror.IsValidation(err) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.EqualError(t, err, tt.wantErr.Error())
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Ravi Kumar", got.Name)
			assert.Equal(t, "99999", got.Phone)
		})
	}
}
