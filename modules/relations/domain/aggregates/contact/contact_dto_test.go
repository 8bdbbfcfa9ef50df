package contact

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }

func TestCreateDTO_Ok_Valid(t *testing.T) {
	dto := &CreateDTO{FirstName: " Jo ", LastName: "Doe", Email: strPtr("jo@example.com")}
	fields, ok := dto.Ok()
	require.True(t, ok, "unexpected failures: %v", fields)
	assert.Equal(t, "Jo", dto.FirstName)
}

func TestCreateDTO_Ok_MissingNames(t *testing.T) {
	dto := &CreateDTO{FirstName: "  "}
	fields, ok := dto.Ok()
	require.False(t, ok)
	assert.Contains(t, fields, "FirstName")
	assert.Contains(t, fields, "LastName")
}

func TestCreateDTO_Ok_BadEmail(t *testing.T) {
	dto := &CreateDTO{FirstName: "Jo", LastName: "Doe", Email: strPtr("nope")}
	fields, ok := dto.Ok()
	require.False(t, ok)
	assert.Contains(t, fields, "Email")
}

func TestFullName(t *testing.T) {
	c := (&CreateDTO{FirstName: "Jo", LastName: "Doe"}).ToEntity(uuid.New())
	assert.Equal(t, "Jo Doe", c.FullName())
}

func TestUpdateDTO_Ok_RejectsEmptyLastName(t *testing.T) {
	dto := &UpdateDTO{LastName: strPtr(" ")}
	fields, ok := dto.Ok()
	require.False(t, ok)
	assert.Contains(t, fields, "LastName")
}

func TestUpdateDTO_Apply_ClearsEmail(t *testing.T) {
	c := (&CreateDTO{FirstName: "Jo", LastName: "Doe", Email: strPtr("jo@example.com")}).ToEntity(uuid.New())

	var cleared *string
	updated := (&UpdateDTO{Email: &cleared}).Apply(c)
	assert.Nil(t, updated.Email())
	assert.Equal(t, "Jo", updated.FirstName())
}
