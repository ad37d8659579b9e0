package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campus-hub/student-records/internal/domain/shared"
)

func validRegisterCommand() RegisterUserCommand {
	return RegisterUserCommand{
		Username:        "alice",
		Email:           "Alice@Example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func TestRegisterUser_Success(t *testing.T) {
	repo := newFakeUserRepo()
	h := NewRegisterUserHandler(repo)

	u, err := h.Execute(context.Background(), validRegisterCommand())
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)

	// The stored hash verifies against the original password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")))

	stored, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, stored.ID)
}

func TestRegisterUser_MissingFields(t *testing.T) {
	h := NewRegisterUserHandler(newFakeUserRepo())

	cmd := validRegisterCommand()
	cmd.Email = ""

	_, err := h.Execute(context.Background(), cmd)
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, "All fields are required", shared.UserMessage(err, ""))
}

func TestRegisterUser_PasswordMismatch(t *testing.T) {
	h := NewRegisterUserHandler(newFakeUserRepo())

	cmd := validRegisterCommand()
	cmd.ConfirmPassword = "different1"

	_, err := h.Execute(context.Background(), cmd)
	require.Error(t, err)
	assert.Equal(t, "Passwords do not match", shared.UserMessage(err, ""))
}

func TestRegisterUser_PasswordTooShort(t *testing.T) {
	h := NewRegisterUserHandler(newFakeUserRepo())

	cmd := validRegisterCommand()
	cmd.Password = "short"
	cmd.ConfirmPassword = "short"

	_, err := h.Execute(context.Background(), cmd)
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 6 characters long", shared.UserMessage(err, ""))
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	h := NewRegisterUserHandler(repo)

	_, err := h.Execute(context.Background(), validRegisterCommand())
	require.NoError(t, err)

	cmd := validRegisterCommand()
	cmd.Email = "other@example.com"
	_, err = h.Execute(context.Background(), cmd)
	require.Error(t, err)
	assert.True(t, shared.IsConflict(err))
	assert.Equal(t, "Username or email already exists", shared.UserMessage(err, ""))
}

func TestRegisterUser_DuplicateEmailCaseInsensitive(t *testing.T) {
	repo := newFakeUserRepo()
	h := NewRegisterUserHandler(repo)

	_, err := h.Execute(context.Background(), validRegisterCommand())
	require.NoError(t, err)

	cmd := validRegisterCommand()
	cmd.Username = "bob"
	cmd.Email = "ALICE@EXAMPLE.COM"
	_, err = h.Execute(context.Background(), cmd)
	require.Error(t, err)
	assert.True(t, shared.IsConflict(err))
}
