package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rpggio/atelier/internal/apperr"
	"github.com/stretchr/testify/require"
)

var errWidgetMissing = apperr.NotFound("widget not found")

func TestFrom_Classifies(t *testing.T) {
	require.Nil(t, apperr.From(nil))

	got := apperr.From(fmt.Errorf("loading widget: %w", errWidgetMissing))
	require.Equal(t, apperr.CodeNotFound, got.Code)
	require.Equal(t, "widget not found", got.Message)
	require.True(t, got.Expected())
	require.ErrorIs(t, got, errWidgetMissing)

	got = apperr.From(apperr.Invalid("name is required"))
	require.Equal(t, apperr.CodeValidation, got.Code)

	got = apperr.From(apperr.FileIO("disk full"))
	require.Equal(t, apperr.CodeFileIO, got.Code)
	require.False(t, got.Expected())

	got = apperr.From(errors.New("database is locked"))
	require.Equal(t, apperr.CodeDatabase, got.Code)
	require.Equal(t, "database is locked", got.Details)
}

func TestFrom_Violations(t *testing.T) {
	v := apperr.Violations{}
	require.NoError(t, v.Check())

	v["name"] = "required"
	got := apperr.From(fmt.Errorf("create: %w", v.Check()))
	require.Equal(t, apperr.CodeValidation, got.Code)
	require.Equal(t, apperr.Violations{"name": "required"}, got.Details)
}

func TestFrom_PassesThrough(t *testing.T) {
	orig := &apperr.Error{Code: apperr.CodeNotFound, Message: "x"}
	require.Same(t, orig, apperr.From(fmt.Errorf("wrap: %w", orig)))
}
