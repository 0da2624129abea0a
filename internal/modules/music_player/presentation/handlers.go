package presentation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"

	"github.com/itsmaat/tunebot/internal/bot"
	"github.com/itsmaat/tunebot/internal/modules/music_player/application/usecases"
	"github.com/itsmaat/tunebot/internal/modules/music_player/domain"
)

// Embed colors.
const (
	colorSuccess = 0x08c404
	colorError   = 0xE74C3C
)

// CommandHandlers holds all the command handlers. This layer is where
// resolution failures stop propagating: typed errors from the resolver are
// translated into user-facing messages and never crash a command.
type CommandHandlers struct {
	voiceChannel *usecases.VoiceChannelService
	playback     *usecases.PlaybackService
	queue        *usecases.QueueService
	resolver     *usecases.ResolverService
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(
	voiceChannel *usecases.VoiceChannelService,
	playback *usecases.PlaybackService,
	queue *usecases.QueueService,
	resolver *usecases.ResolverService,
) *CommandHandlers {
	return &CommandHandlers{
		voiceChannel: voiceChannel,
		playback:     playback,
		queue:        queue,
		resolver:     resolver,
	}
}

// HandleJoin handles the /join command.
func (h *CommandHandlers) HandleJoin(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	ids, err := parseInteractionIDs(i)
	if err != nil {
		return respondError(r, err.Error())
	}

	var voiceChannelID snowflake.ID
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "channel" {
			voiceChannelID, err = snowflake.Parse(opt.ChannelValue(s).ID)
			if err != nil {
				return respondError(r, "Invalid voice channel")
			}
		}
	}

	output, err := h.voiceChannel.Join(ctx, usecases.JoinInput{
		GuildID:               ids.guildID,
		UserID:                ids.userID,
		NotificationChannelID: ids.channelID,
		VoiceChannelID:        voiceChannelID,
	})
	if err != nil {
		return respondError(r, userMessage(err))
	}

	return respondSuccess(r, fmt.Sprintf("Connected to <#%d>.", output.VoiceChannelID))
}

// HandleLeave handles the /leave command.
func (h *CommandHandlers) HandleLeave(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	if err := h.voiceChannel.Leave(ctx, usecases.LeaveInput{GuildID: guildID}); err != nil {
		return respondError(r, userMessage(err))
	}

	return respondSuccess(r, "Disconnected.")
}

// HandlePlay handles the /play command. The full flow: join the requester's
// voice channel, resolve the query into tracks, enqueue them.
func (h *CommandHandlers) HandlePlay(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	ids, err := parseInteractionIDs(i)
	if err != nil {
		return respondError(r, err.Error())
	}

	var query string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "query" {
			query = opt.StringValue()
		}
	}

	if _, err := h.voiceChannel.Join(ctx, usecases.JoinInput{
		GuildID:               ids.guildID,
		UserID:                ids.userID,
		NotificationChannelID: ids.channelID,
	}); err != nil {
		return respondError(r, userMessage(err))
	}

	output, err := h.resolver.Resolve(ctx, usecases.ResolveInput{
		Query:     query,
		Requester: requesterFrom(i),
	})
	if err != nil {
		slog.Warn("query resolution failed", "query", query, "error", err)
		return respondError(r, userMessage(err))
	}
	if output.IsEmpty() {
		return respondError(r, "No results found.")
	}

	addOutput, err := h.queue.Add(ctx, usecases.QueueAddInput{
		GuildID:               ids.guildID,
		Tracks:                output.Tracks,
		NotificationChannelID: ids.channelID,
	})
	if err != nil {
		return respondError(r, userMessage(err))
	}

	var description string
	if output.Playlist != nil {
		description = fmt.Sprintf(
			"Added **%d tracks** from playlist **%s** to the queue.",
			addOutput.Added,
			output.Playlist.Title,
		)
	} else {
		// A search resolves to multiple candidates; only the top one plays.
		track := output.Tracks[0]
		description = fmt.Sprintf("Added [%s](%s) to the queue.", track.Title, track.URL)
	}

	return respondSuccess(r, description)
}

// HandleStop handles the /stop command.
func (h *CommandHandlers) HandleStop(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	if err := h.playback.Stop(ctx, usecases.StopInput{GuildID: guildID}); err != nil {
		return respondError(r, userMessage(err))
	}

	return respondSuccess(r, "Stopped playback.")
}

// HandlePause handles the /pause command.
func (h *CommandHandlers) HandlePause(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	ids, err := parseInteractionIDs(i)
	if err != nil {
		return respondError(r, err.Error())
	}

	if err := h.playback.Pause(ctx, usecases.PauseInput{
		GuildID:               ids.guildID,
		NotificationChannelID: ids.channelID,
	}); err != nil {
		return respondError(r, userMessage(err))
	}

	return respondSuccess(r, "Paused playback.")
}

// HandleResume handles the /resume command.
func (h *CommandHandlers) HandleResume(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	ids, err := parseInteractionIDs(i)
	if err != nil {
		return respondError(r, err.Error())
	}

	if err := h.playback.Resume(ctx, usecases.ResumeInput{
		GuildID:               ids.guildID,
		NotificationChannelID: ids.channelID,
	}); err != nil {
		return respondError(r, userMessage(err))
	}

	return respondSuccess(r, "Resumed playback.")
}

// HandleSkip handles the /skip command.
func (h *CommandHandlers) HandleSkip(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	ids, err := parseInteractionIDs(i)
	if err != nil {
		return respondError(r, err.Error())
	}

	output, err := h.playback.Skip(ctx, usecases.SkipInput{
		GuildID:               ids.guildID,
		NotificationChannelID: ids.channelID,
	})
	if err != nil {
		return respondError(r, userMessage(err))
	}

	if output.NextTrack == nil {
		return respondSuccess(r, "Skipped. The queue is over.")
	}
	return respondSuccess(r, "Skipped.")
}

// HandleQueue handles the /queue command.
func (h *CommandHandlers) HandleQueue(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return respondError(r, "Invalid subcommand")
	}

	subCmd := options[0]
	switch subCmd.Name {
	case "list":
		return h.handleQueueList(s, i, r, subCmd.Options)
	case "remove":
		return h.handleQueueRemove(s, i, r, subCmd.Options)
	case "clear":
		return h.handleQueueClear(s, i, r)
	default:
		return respondError(r, "Unknown subcommand")
	}
}

func (h *CommandHandlers) handleQueueList(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	var page int
	for _, opt := range options {
		if opt.Name == "page" {
			page = int(opt.IntValue())
		}
	}

	output, err := h.queue.List(usecases.QueueListInput{
		GuildID: guildID,
		Page:    page,
	})
	if err != nil {
		return respondError(r, userMessage(err))
	}

	var sb strings.Builder
	start := (output.CurrentPage - 1) * usecases.DefaultPageSize
	for idx, entry := range output.Entries {
		position := start + idx + 1
		if output.CurrentTrack != nil && entry.Track.ID == output.CurrentTrack.ID {
			sb.WriteString(fmt.Sprintf("**%d. [%s](%s) `%s` (now playing)**\n",
				position, entry.Track.Title, entry.Track.URL,
				entry.Track.FormattedDuration()))
			continue
		}
		sb.WriteString(fmt.Sprintf("%d. [%s](%s) `%s`\n",
			position, entry.Track.Title, entry.Track.URL,
			entry.Track.FormattedDuration()))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Queue",
		Description: sb.String(),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d/%d (%d tracks)",
				output.CurrentPage, output.TotalPages, output.TotalTracks),
		},
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func (h *CommandHandlers) handleQueueRemove(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) error {
	ctx := context.Background()

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	var position int
	for _, opt := range options {
		if opt.Name == "position" {
			// User input is 1-indexed.
			position = int(opt.IntValue()) - 1
		}
	}

	output, err := h.queue.Remove(ctx, usecases.QueueRemoveInput{
		GuildID:  guildID,
		Position: position,
	})
	if err != nil {
		return respondError(r, userMessage(err))
	}

	return respondSuccess(r, fmt.Sprintf("Removed **%s** from the queue.",
		output.RemovedTrack.Title))
}

func (h *CommandHandlers) handleQueueClear(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	ids, err := parseInteractionIDs(i)
	if err != nil {
		return respondError(r, err.Error())
	}

	output, err := h.queue.Clear(ctx, usecases.QueueClearInput{
		GuildID:               ids.guildID,
		NotificationChannelID: ids.channelID,
	})
	if err != nil {
		return respondError(r, userMessage(err))
	}

	return respondSuccess(r, fmt.Sprintf("Cleared %d tracks from the queue.",
		output.ClearedCount))
}

// HandleLoop handles the /loop command.
func (h *CommandHandlers) HandleLoop(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	var mode string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "mode" {
			mode = opt.StringValue()
		}
	}

	var newMode domain.LoopMode
	if mode == "" {
		newMode, err = h.playback.CycleLoopMode(ctx, guildID)
		if err != nil {
			return respondError(r, userMessage(err))
		}
	} else {
		newMode = domain.ParseLoopMode(mode)
		if err := h.playback.SetLoopMode(ctx, usecases.SetLoopModeInput{
			GuildID: guildID,
			Mode:    mode,
		}); err != nil {
			return respondError(r, userMessage(err))
		}
	}

	var description string
	switch newMode {
	case domain.LoopModeTrack:
		description = "Looping the current track. \U0001F502"
	case domain.LoopModeQueue:
		description = "Looping the queue. \U0001F501"
	default:
		description = "Looping disabled."
	}

	return respondSuccess(r, description)
}

// interactionIDs holds the snowflakes every guild command needs.
type interactionIDs struct {
	guildID   snowflake.ID
	userID    snowflake.ID
	channelID snowflake.ID
}

func parseInteractionIDs(i *discordgo.InteractionCreate) (interactionIDs, error) {
	var ids interactionIDs
	var err error

	if ids.guildID, err = snowflake.Parse(i.GuildID); err != nil {
		return ids, errors.New("Invalid guild")
	}
	if i.Member == nil || i.Member.User == nil {
		return ids, errors.New("This command can only be used in a server")
	}
	if ids.userID, err = snowflake.Parse(i.Member.User.ID); err != nil {
		return ids, errors.New("Invalid user")
	}
	if ids.channelID, err = snowflake.Parse(i.ChannelID); err != nil {
		return ids, errors.New("Invalid channel")
	}
	return ids, nil
}

func requesterFrom(i *discordgo.InteractionCreate) usecases.Requester {
	requester := usecases.Requester{}
	if i.Member == nil || i.Member.User == nil {
		return requester
	}
	if id, err := snowflake.Parse(i.Member.User.ID); err == nil {
		requester.ID = id
	}
	requester.Name = i.Member.User.Username
	requester.AvatarURL = i.Member.User.AvatarURL("64")
	return requester
}

// userMessage maps service errors to user-facing text. Typed errors from the
// resolver get precise wording; anything unexpected gets a generic message so
// internals never leak into Discord.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidReference):
		return "That link is not a playable YouTube URL."
	case errors.Is(err, usecases.ErrPlaylistNotFound):
		return "Could not find that playlist."
	case errors.Is(err, usecases.ErrVideoUnavailable):
		return "That video is unavailable."
	case errors.Is(err, usecases.ErrStreamUnavailable):
		return "The track could not be streamed."
	case errors.Is(err, usecases.ErrNotConnected),
		errors.Is(err, usecases.ErrUserNotInVoice),
		errors.Is(err, usecases.ErrNotPlaying),
		errors.Is(err, usecases.ErrAlreadyPaused),
		errors.Is(err, usecases.ErrNotPaused),
		errors.Is(err, usecases.ErrNoResults),
		errors.Is(err, usecases.ErrQueueEmpty),
		errors.Is(err, usecases.ErrNothingToClear),
		errors.Is(err, usecases.ErrInvalidPosition),
		errors.Is(err, usecases.ErrIsCurrentTrack):
		return capitalize(err.Error())
	default:
		return "Something went wrong while processing your request."
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func respondSuccess(r bot.Responder, description string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Description: description,
					Color:       colorSuccess,
				},
			},
		},
	})
}

func respondError(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Description: message,
					Color:       colorError,
				},
			},
		},
	})
}
