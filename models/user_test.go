package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octabyte/campus-portal/utils"
)

func TestUserIDAcceptsStringAndNumber(t *testing.T) {
	cases := map[string]UserID{
		`{"id":"7f0c1e0a-3b55-4b43-9d43-2f4a6f0f3c11"}`: "7f0c1e0a-3b55-4b43-9d43-2f4a6f0f3c11",
		`{"id":42}`:   "42",
		`{"id":null}`: "",
	}
	for in, want := range cases {
		var u User
		require.NoError(t, utils.StringToStruct(in, &u), in)
		assert.Equal(t, want, u.ID, in)
	}
}

func TestUserIDRejectsObjects(t *testing.T) {
	var u User
	assert.Error(t, utils.StringToStruct(`{"id":{"n":1}}`, &u))
}

func TestUserIDEncodesAsString(t *testing.T) {
	s, err := utils.StructToString(User{ID: "42", Email: "a@b.c", Role: "student"})
	require.NoError(t, err)
	assert.Contains(t, s, `"id":"42"`)
}
