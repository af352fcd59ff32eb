package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindStoreFailure, KindOf(fmt.Errorf("wrapped: %w", StoreFailure("db", errors.New("boom")))))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestAppErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := Upstream("failed to charge", cause)

	assert.Equal(t, "failed to charge: timeout", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "bad", InvalidInput("bad").Error())
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, map[string]interface{}{"code": "CONFLICT"}, NewAppError(KindConflict, "taken", nil).Extensions())

	partial := &AppError{Kind: KindStoreFailure, Message: "partial", Partial: true, ChargeID: "ch_1"}
	assert.Equal(t, map[string]interface{}{
		"code":     "STORE_FAILURE",
		"partial":  true,
		"chargeId": "ch_1",
	}, partial.Extensions())
}

func TestCheckPage(t *testing.T) {
	assert.Nil(t, CheckPage(0, 0))
	assert.Nil(t, CheckPage(10, 2))
	assert.Equal(t, KindInvalidInput, CheckPage(-1, 1).Kind)
	assert.Equal(t, KindInvalidInput, CheckPage(10, -1).Kind)
}
