package service_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/service"
	apperrors "github.com/talkserve/backend/pkg/util"
)

type mockWidgetRepo struct {
	settings    map[string]*domain.WidgetSettings
	experiences map[string]*domain.ChatExperience
}

func newMockWidgetRepo() *mockWidgetRepo {
	return &mockWidgetRepo{
		settings:    make(map[string]*domain.WidgetSettings),
		experiences: make(map[string]*domain.ChatExperience),
	}
}

func (m *mockWidgetRepo) GetSettings(_ context.Context, businessID string) (*domain.WidgetSettings, error) {
	settings, ok := m.settings[businessID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return settings, nil
}

func (m *mockWidgetRepo) UpsertSettings(_ context.Context, settings *domain.WidgetSettings) error {
	m.settings[settings.BusinessID] = settings
	return nil
}

func (m *mockWidgetRepo) GetChatExperience(_ context.Context, businessID string) (*domain.ChatExperience, error) {
	exp, ok := m.experiences[businessID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return exp, nil
}

func (m *mockWidgetRepo) UpsertChatExperience(_ context.Context, exp *domain.ChatExperience) error {
	m.experiences[exp.BusinessID] = exp
	return nil
}

func newWidgetFixture() (*service.WidgetService, *mockWidgetRepo, *mockMemberRepo) {
	widgets := newMockWidgetRepo()
	members := newMockMemberRepo()
	members.add(activeMember(bizID, "admin1", domain.MemberRoleAdmin, nil))
	return service.NewWidgetService(widgets, members, "https://cdn.example.com/widget.js"), widgets, members
}

func TestWidgetSettingsMembershipRequired(t *testing.T) {
	svc, _, _ := newWidgetFixture()

	_, err := svc.GetSettings(context.Background(), bizID, "stranger")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestUpdateWidgetSettingsPartial(t *testing.T) {
	svc, widgets, _ := newWidgetFixture()
	widgets.settings[bizID] = &domain.WidgetSettings{
		BusinessID: bizID, Enabled: true, Theme: "light", Position: "bottom-right",
	}

	updated, err := svc.UpdateSettings(context.Background(), bizID, "admin1", service.WidgetSettingsInput{
		Theme: strptr("dark"),
	})
	require.NoError(t, err)
	assert.Equal(t, "dark", updated.Theme)
	assert.True(t, updated.Enabled)
	assert.Equal(t, "bottom-right", updated.Position)
}

func TestEmbedScript(t *testing.T) {
	svc, _, _ := newWidgetFixture()

	script, err := svc.EmbedScript(bizID)
	require.NoError(t, err)
	assert.Equal(t, `<script src="https://cdn.example.com/widget.js" data-business-id="biz-1" async></script>`, script)

	_, err = svc.EmbedScript("  ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestChatExperienceDefaults(t *testing.T) {
	svc, widgets, _ := newWidgetFixture()

	exp, err := svc.GetChatExperience(context.Background(), bizID, "admin1")
	require.NoError(t, err)
	assert.Equal(t, "Hi! How can we help?", exp.Greeting)
	assert.Equal(t, "friendly", exp.Tone)
	assert.Equal(t, "en", exp.Language)

	// an update over the defaults persists the merged record
	updated, err := svc.UpdateChatExperience(context.Background(), bizID, "admin1", service.ChatExperienceInput{
		Tone: strptr("formal"),
	})
	require.NoError(t, err)
	assert.Equal(t, "formal", updated.Tone)
	assert.Equal(t, "Hi! How can we help?", updated.Greeting)
	assert.Equal(t, updated, widgets.experiences[bizID])
}
