package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"not found", NotFound("product %d not found", 3), ErrNotFound},
		{"invalid", Invalid("name is required"), ErrInvalidArgument},
		{"store", Store(errors.New("conn reset"), "fetching products"), ErrStoreFailure},
		{"wrapped not found", fmt.Errorf("get: %w", NotFound("x")), ErrNotFound},
		{"plain", errors.New("boom"), ErrInternal},
		{"internal", Internal(errors.New("boom"), "encoding"), ErrInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Kind(tc.err))
		})
	}
	assert.Nil(t, Kind(nil))
}

func TestStoreKeepsDomainErrors(t *testing.T) {
	nf := NotFound("order 9 not found")
	assert.Same(t, nf, Store(nf, "fetching order"))
	assert.Nil(t, Store(nil, "noop"))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Product with ID 4 not found", PublicMessage(NotFound("Product with ID %d not found", 4)))
	assert.Equal(t, "database error while fetching products",
		PublicMessage(Store(errors.New("pq: password authentication failed"), "fetching products")))
	assert.Equal(t, "An internal server error occurred", PublicMessage(errors.New("nil map")))
}
