package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

// fixedIntn always returns the same value so every generated number collides.
type fixedIntn struct{ n int }

func (f fixedIntn) Intn(int) int { return f.n }

func TestAccountNumberGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockAccountNumberExister(ctrl)
	store.EXPECT().Exists(ctx, "007-0000007-07").Return(false, nil)

	gen := NewAccountNumberGenerator(store, fixedIntn{7})
	number, err := gen.Generate(ctx)

	assert.NoError(t, err)
	assert.Equal(t, "007-0000007-07", number)
	assert.Regexp(t, regexp.MustCompile(`^\d{3}-\d{7}-\d{2}$`), number)
}

func TestAccountNumberGenerator_RetriesOnCollision(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockAccountNumberExister(ctrl)
	gomock.InOrder(
		store.EXPECT().Exists(ctx, "003-0000003-03").Return(true, nil),
		store.EXPECT().Exists(ctx, "003-0000003-03").Return(true, nil),
		store.EXPECT().Exists(ctx, "003-0000003-03").Return(false, nil),
	)

	gen := NewAccountNumberGenerator(store, fixedIntn{3})
	number, err := gen.Generate(ctx)

	assert.NoError(t, err)
	assert.Equal(t, "003-0000003-03", number)
}

func TestAccountNumberGenerator_Exhausted(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockAccountNumberExister(ctrl)
	store.EXPECT().Exists(ctx, gomock.Any()).Return(true, nil).Times(10)

	gen := NewAccountNumberGenerator(store, fixedIntn{1})
	_, err := gen.Generate(ctx)

	assert.ErrorIs(t, err, ErrAccountNumberExhausted)
}

func TestAccountNumberGenerator_StoreError(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storeErr := errors.New("connection refused")
	store := NewMockAccountNumberExister(ctrl)
	store.EXPECT().Exists(ctx, gomock.Any()).Return(false, storeErr)

	gen := NewAccountNumberGenerator(store, fixedIntn{1})
	_, err := gen.Generate(ctx)

	assert.ErrorIs(t, err, storeErr)
}
