package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/disgoorg/snowflake/v2"

	"github.com/itsmaat/tunebot/internal/modules/music_player/domain"
)

func voiceFixture(userChannel *snowflake.ID) (*VoiceChannelService, *memoryRepo, *fakeVoiceConnection, *fakePublisher) {
	repo := newMemoryRepo()
	connection := &fakeVoiceConnection{}
	publisher := &fakePublisher{}
	service := NewVoiceChannelService(repo, connection, &fakeVoiceState{userChannel: userChannel}, publisher)
	return service, repo, connection, publisher
}

func TestJoin_UserChannel(t *testing.T) {
	userChannel := snowflake.ID(100)
	service, repo, connection, _ := voiceFixture(&userChannel)

	output, err := service.Join(context.Background(), JoinInput{
		GuildID:               testGuildID,
		UserID:                snowflake.ID(5),
		NotificationChannelID: snowflake.ID(200),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.VoiceChannelID != userChannel {
		t.Errorf("expected channel %d, got %d", userChannel, output.VoiceChannelID)
	}
	if len(connection.joined) != 1 || connection.joined[0] != userChannel {
		t.Errorf("unexpected join calls: %v", connection.joined)
	}

	state := repo.Get(testGuildID)
	if state == nil {
		t.Fatal("expected player state to be created")
	}
	if state.NotificationChannelID() != snowflake.ID(200) {
		t.Errorf("unexpected notification channel %d", state.NotificationChannelID())
	}
}

func TestJoin_ExplicitChannel(t *testing.T) {
	service, _, connection, _ := voiceFixture(nil)

	output, err := service.Join(context.Background(), JoinInput{
		GuildID:               testGuildID,
		UserID:                snowflake.ID(5),
		NotificationChannelID: snowflake.ID(200),
		VoiceChannelID:        snowflake.ID(300),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.VoiceChannelID != snowflake.ID(300) {
		t.Errorf("expected explicit channel, got %d", output.VoiceChannelID)
	}
	if len(connection.joined) != 1 {
		t.Errorf("expected 1 join call, got %d", len(connection.joined))
	}
}

func TestJoin_UserNotInVoice(t *testing.T) {
	service, _, _, _ := voiceFixture(nil)

	_, err := service.Join(context.Background(), JoinInput{
		GuildID: testGuildID,
		UserID:  snowflake.ID(5),
	})
	if !errors.Is(err, ErrUserNotInVoice) {
		t.Errorf("expected ErrUserNotInVoice, got %v", err)
	}
}

// Joining the channel the bot is already in issues no connection call and
// only adopts the new notification channel.
func TestJoin_SameChannel(t *testing.T) {
	userChannel := snowflake.ID(100)
	service, repo, connection, _ := voiceFixture(&userChannel)
	state := connectedState(repo, testGuildID)

	output, err := service.Join(context.Background(), JoinInput{
		GuildID:               testGuildID,
		UserID:                snowflake.ID(5),
		NotificationChannelID: snowflake.ID(999),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.VoiceChannelID != userChannel {
		t.Errorf("expected channel %d, got %d", userChannel, output.VoiceChannelID)
	}
	if len(connection.joined) != 0 {
		t.Errorf("expected no join call, got %v", connection.joined)
	}
	if state.NotificationChannelID() != snowflake.ID(999) {
		t.Errorf("expected updated notification channel, got %d", state.NotificationChannelID())
	}
}

// Moving to a different channel keeps the existing queue.
func TestJoin_MovePreservesQueue(t *testing.T) {
	userChannel := snowflake.ID(555)
	service, repo, connection, _ := voiceFixture(&userChannel)
	state := connectedState(repo, testGuildID)
	state.Queue.Add(domain.NewQueueEntry(domain.Track{ID: "aaaaaaaaaaa", Title: "a"}))

	output, err := service.Join(context.Background(), JoinInput{
		GuildID:               testGuildID,
		UserID:                snowflake.ID(5),
		NotificationChannelID: snowflake.ID(200),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.VoiceChannelID != userChannel {
		t.Errorf("expected move to %d, got %d", userChannel, output.VoiceChannelID)
	}
	if len(connection.joined) != 1 {
		t.Errorf("expected 1 join call, got %d", len(connection.joined))
	}

	moved := repo.Get(testGuildID)
	if moved != state {
		t.Fatal("expected the same player state instance")
	}
	if moved.Queue.Len() != 1 {
		t.Errorf("expected queue preserved, got %d entries", moved.Queue.Len())
	}
	if moved.VoiceChannelID() != userChannel {
		t.Errorf("expected updated voice channel, got %d", moved.VoiceChannelID())
	}
}

func TestLeave(t *testing.T) {
	service, repo, connection, _ := voiceFixture(nil)
	connectedState(repo, testGuildID)

	if err := service.Leave(context.Background(), LeaveInput{GuildID: testGuildID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if connection.leaveCalls != 1 {
		t.Errorf("expected 1 leave call, got %d", connection.leaveCalls)
	}
	if repo.Get(testGuildID) != nil {
		t.Error("expected player state to be deleted")
	}
}

func TestLeave_NotConnected(t *testing.T) {
	service, _, _, _ := voiceFixture(nil)

	err := service.Leave(context.Background(), LeaveInput{GuildID: testGuildID})
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestLeave_CleansUpNowPlayingMessage(t *testing.T) {
	service, repo, _, publisher := voiceFixture(nil)
	state := connectedState(repo, testGuildID)
	state.SetNowPlayingMessage(snowflake.ID(200), snowflake.ID(888))

	if err := service.Leave(context.Background(), LeaveInput{GuildID: testGuildID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(publisher.playbackFinished) != 1 {
		t.Fatalf("expected 1 cleanup event, got %d", len(publisher.playbackFinished))
	}
	event := publisher.playbackFinished[0]
	if event.LastMessageID == nil || *event.LastMessageID != snowflake.ID(888) {
		t.Errorf("unexpected cleanup event: %+v", event)
	}
}

func TestHandleBotVoiceStateChange_Disconnected(t *testing.T) {
	service, repo, _, _ := voiceFixture(nil)
	connectedState(repo, testGuildID)

	service.HandleBotVoiceStateChange(BotVoiceStateChangeInput{
		GuildID:      testGuildID,
		NewChannelID: nil,
	})

	if repo.Get(testGuildID) != nil {
		t.Error("expected player state to be deleted on external disconnect")
	}
}

func TestHandleBotVoiceStateChange_Moved(t *testing.T) {
	service, repo, _, _ := voiceFixture(nil)
	state := connectedState(repo, testGuildID)

	newChannel := snowflake.ID(777)
	service.HandleBotVoiceStateChange(BotVoiceStateChangeInput{
		GuildID:      testGuildID,
		NewChannelID: &newChannel,
	})

	if state.VoiceChannelID() != newChannel {
		t.Errorf("expected voice channel updated to %d, got %d", newChannel, state.VoiceChannelID())
	}
	if repo.Get(testGuildID) == nil {
		t.Error("expected state to survive a move")
	}
}

func TestHandleBotVoiceStateChange_UnknownGuild(t *testing.T) {
	service, repo, _, _ := voiceFixture(nil)

	// No state for this guild: the change is ignored.
	service.HandleBotVoiceStateChange(BotVoiceStateChangeInput{
		GuildID:      testGuildID,
		NewChannelID: nil,
	})

	if repo.Get(testGuildID) != nil {
		t.Error("expected no state to appear")
	}
}
