package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUser(t *testing.T) {
	require.NoError(t, ValidateUser("Ecin", "ecin@example.com", "kopi-susu-7"))

	err := ValidateUser("", "not-an-email", "short")
	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")

	err = ValidateUser("Ecin", "ecin@example.com", "mypassword1")
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "password")
}
