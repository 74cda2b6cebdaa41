package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

func TestUserRepository_InsertAndLookups(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Insert(ctx, &domain.User{
		Email:       "a@x.com",
		Name:        "A",
		Preferences: domain.DefaultPreferences(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	byEmail, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", byID.Name)

	_, err = repo.FindByPhone(ctx, "+15551234567")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_UniquenessByEmailAndPhone(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.Insert(ctx, &domain.User{Email: "a@x.com"})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, &domain.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	_, err = repo.Insert(ctx, &domain.User{Phone: "+15551234567"})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, &domain.User{Phone: "+15551234567"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestUserRepository_ReturnsClones(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Insert(ctx, &domain.User{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)

	// Mutating the returned record must not leak into the store.
	created.Name = "mutated"
	stored, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", stored.Name)
}

func TestUserRepository_UpdateOnlyNameAndPreferences(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Insert(ctx, &domain.User{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)

	created.Name = "A2"
	created.Preferences = domain.Preferences{Theme: "dark"}
	created.Email = "evil@x.com"

	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Name)
	assert.Equal(t, "dark", updated.Preferences.Theme)
	assert.Equal(t, "a@x.com", updated.Email, "email is immutable")
}

func TestOTPRepository_FindRespectsExpiry(t *testing.T) {
	repo := NewOTPRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Insert(ctx, &domain.OneTimeCode{
		Phone:     "+15551234567",
		Code:      "123456",
		CreatedAt: now,
		ExpiresAt: now.Add(10 * time.Minute),
	}))

	found, err := repo.Find(ctx, "+15551234567", "123456", now)
	require.NoError(t, err)
	assert.NotEmpty(t, found.ID)

	_, err = repo.Find(ctx, "+15551234567", "123456", now.Add(11*time.Minute))
	assert.ErrorIs(t, err, domain.ErrInvalidOTP, "expired code must never match")

	_, err = repo.Find(ctx, "+15551234567", "654321", now)
	assert.ErrorIs(t, err, domain.ErrInvalidOTP)
}

func TestOTPRepository_MultipleOutstandingCodes(t *testing.T) {
	repo := NewOTPRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	for _, code := range []string{"111111", "222222"} {
		require.NoError(t, repo.Insert(ctx, &domain.OneTimeCode{
			Phone:     "+15551234567",
			Code:      code,
			CreatedAt: now,
			ExpiresAt: now.Add(10 * time.Minute),
		}))
	}

	first, err := repo.Find(ctx, "+15551234567", "111111", now)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, first.ID))

	_, err = repo.Find(ctx, "+15551234567", "111111", now)
	assert.ErrorIs(t, err, domain.ErrInvalidOTP)

	_, err = repo.Find(ctx, "+15551234567", "222222", now)
	assert.NoError(t, err, "other outstanding codes stay valid")
}

func TestTaskRepository_ListNewestFirst(t *testing.T) {
	repo := NewTaskRepository()
	ctx := context.Background()
	base := time.Now().UTC()

	for i, title := range []string{"old", "mid", "new"} {
		_, err := repo.Insert(ctx, &domain.Task{
			UserID:    "user_1",
			Title:     title,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	list, err := repo.ListByUser(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "new", list[0].Title)
	assert.Equal(t, "old", list[2].Title)
}

func TestTaskRepository_ListRecentWindowAndLimit(t *testing.T) {
	repo := NewTaskRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := repo.Insert(ctx, &domain.Task{UserID: "user_1", Title: "ancient", CreatedAt: now.Add(-10 * 24 * time.Hour)})
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		_, err := repo.Insert(ctx, &domain.Task{
			UserID:    "user_1",
			Title:     "recent",
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	list, err := repo.ListRecent(ctx, "user_1", now.Add(-7*24*time.Hour), 5)
	require.NoError(t, err)
	assert.Len(t, list, 5)
	for _, task := range list {
		assert.Equal(t, "recent", task.Title)
	}
}

func TestTaskRepository_OwnerScoping(t *testing.T) {
	repo := NewTaskRepository()
	ctx := context.Background()

	created, err := repo.Insert(ctx, &domain.Task{UserID: "user_1", Title: "Private", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, "user_2", created.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	err = repo.Delete(ctx, "user_2", created.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	require.NoError(t, repo.Delete(ctx, "user_1", created.ID))
}

func TestGoalRepository_MilestonesAreDeepCopied(t *testing.T) {
	repo := NewGoalRepository()
	ctx := context.Background()

	milestones := []string{"first"}
	created, err := repo.Insert(ctx, &domain.Goal{
		UserID:     "user_1",
		Title:      "G",
		Milestones: milestones,
		CreatedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)

	milestones[0] = "mutated"
	stored, err := repo.FindByID(ctx, "user_1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", stored.Milestones[0])
}

func TestConversationRepository_Insert(t *testing.T) {
	repo := NewConversationRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &domain.Conversation{
		UserID: "user_1",
		Messages: []domain.ChatMessage{
			{Role: domain.RoleUser, Content: "Hi"},
			{Role: domain.RoleAssistant, Content: "Hello"},
		},
		CreatedAt: time.Now().UTC(),
	}))
	assert.Equal(t, 1, repo.Len())
}
