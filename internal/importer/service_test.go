package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/importer"
)

func TestService_Import(t *testing.T) {
	svc := importer.NewService()

	params, err := svc.Import(importer.FormatPriceList, strings.NewReader("Item,Price\nSalt,20\n"))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "Salt", params[0].Name)

	_, err = svc.Import("xlsx", strings.NewReader(""))
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Import(importer.FormatPriceList, strings.NewReader("nothing useful"))
	assert.True(t, apperror.IsValidation(err))
}
