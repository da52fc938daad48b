package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"journal/internal/models"
)

func sampleUser() models.User {
	email := "pepe@example.com"
	return models.User{
		ID:        1,
		FirstName: "Pepe",
		LastName:  "Ruiz",
		Username:  "pep01",
		Email:     &email,
		Age:       24,
		Password:  "hash",
		IsActive:  true,
	}
}

func TestUserPatch_ApplyPartial(t *testing.T) {
	u := sampleUser()
	patch := models.UserPatch{Username: models.Some("pep02"), Age: models.Some(30)}

	cols := patch.Apply(&u, true)

	assert.Equal(t, []string{"username", "age"}, cols)
	assert.Equal(t, "pep02", u.Username)
	assert.Equal(t, 30, u.Age)
	assert.Equal(t, "Pepe", u.FirstName)
	assert.Equal(t, "Ruiz", u.LastName)
	assert.NotNil(t, u.Email)
}

func TestUserPatch_ApplyFull(t *testing.T) {
	u := sampleUser()
	patch := models.UserPatch{Username: models.Some("pep02"), Age: models.Some(30)}

	cols := patch.Apply(&u, false)

	assert.Equal(t, []string{"first_name", "last_name", "username", "email", "age"}, cols)
	assert.Equal(t, "pep02", u.Username)
	assert.Empty(t, u.FirstName)
	assert.Empty(t, u.LastName)
	assert.Nil(t, u.Email)
	assert.Equal(t, "hash", u.Password)
}

func TestUserPatch_ApplySameValue(t *testing.T) {
	u := sampleUser()
	cols := models.UserPatch{Username: models.Some("pep01")}.Apply(&u, true)
	assert.Equal(t, []string{"username"}, cols)
}

func TestUserUpdate_Patch(t *testing.T) {
	age := 40
	patch := models.UserUpdate{FirstName: "Jose", LastName: "Lopez", Username: "pep03", Age: &age, Password: "nueva-clave"}.Patch()

	assert.True(t, patch.FirstName.Set)
	assert.Equal(t, models.Some("nueva-clave"), patch.Password)
	assert.True(t, patch.Email.Set)
	assert.Nil(t, patch.Email.Value)
	assert.Equal(t, models.Some(40), patch.Age)
}

func TestUserCreate_NewUser(t *testing.T) {
	age := 24
	u := models.UserCreate{FirstName: "Pepe", LastName: "Ruiz", Username: "pep01", Age: &age, Password: "12345678"}.NewUser()

	assert.Zero(t, u.ID)
	assert.True(t, u.IsActive)
	assert.Equal(t, 24, u.Age)
	assert.Equal(t, "12345678", u.Password)
}

func TestNewUserRead(t *testing.T) {
	u := sampleUser()
	r := models.NewUserRead(&u)
	assert.Equal(t, "pep01", r.Username)
	assert.Equal(t, "pepe@example.com", *r.Email)

	assert.Empty(t, models.NewUserReads(nil))
	assert.NotNil(t, models.NewUserReads(nil))
}

func TestNewNoteRead(t *testing.T) {
	u := sampleUser()
	n := models.Note{ID: 3, Title: "Dia 1", Description: "Hoy fue un buen dia", UserID: u.ID, User: &u}

	r := models.NewNoteRead(&n)
	assert.Equal(t, uint(3), r.ID)
	if assert.NotNil(t, r.User) {
		assert.Equal(t, "pep01", r.User.Username)
	}

	n.User = nil
	assert.Nil(t, models.NewNoteRead(&n).User)
}

func TestUserPatch_ApplyPasswordOnlyWhenSupplied(t *testing.T) {
	u := sampleUser()
	cols := models.UserPatch{Age: models.Some(30)}.Apply(&u, false)
	assert.NotContains(t, cols, "password")
	assert.Equal(t, "hash", u.Password)

	cols = models.UserPatch{Password: models.Some("otro-hash")}.Apply(&u, true)
	assert.Equal(t, []string{"password"}, cols)
	assert.Equal(t, "otro-hash", u.Password)
}
