package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/services/shapes"
)

func TestWriteErrorMapsSentinels(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{model.ErrSessionNotFound, http.StatusNotFound, CodeSessionNotFound},
		{fmt.Errorf("%w: game_over", model.ErrSessionFinished), http.StatusConflict, CodeSessionFinished},
		{fmt.Errorf("%w: p9", model.ErrPieceNotFound), http.StatusNotFound, CodePieceNotFound},
		{model.ErrResolvePending, http.StatusConflict, CodeResolvePending},
		{model.ErrInvalidPlacement, http.StatusUnprocessableEntity, CodeInvalidPlacement},
		{model.ErrOutOfBounds, http.StatusBadRequest, CodeOutOfBounds},
		{model.ErrUnknownVariant, http.StatusBadRequest, CodeUnknownVariant},
		{fmt.Errorf("%w: %w", model.ErrInvalidConfig, shapes.ErrUnknownCatalog), http.StatusBadRequest, CodeUnknownCatalog},
		{model.ErrInvalidConfig, http.StatusBadRequest, CodeInvalidConfig},
		{model.ErrBoosterDisabled, http.StatusConflict, CodeBoosterDisabled},
		{model.ErrInsufficientCoins, http.StatusConflict, CodeInsufficientCoins},
		{model.ErrUnknownStrategy, http.StatusBadRequest, CodeUnknownStrategy},
		{NewInvalidRequestError("bad"), http.StatusBadRequest, CodeInvalidRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestInternalErrorHidesDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("redis: connection refused"))

	assert.NotContains(t, rr.Body.String(), "redis")
}
