package discord

import (
	"github.com/bwmarrin/discordgo"

	"assassin/internal/delivery"
)

func (b *Bot) isAdmin(userID string) bool {
	_, ok := b.adminIDs[userID]
	return ok
}

func (b *Bot) respondMessage(s *discordgo.Session, i *discordgo.Interaction, msg string, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: delivery.Truncate(msg, maxMessageLength),
			Flags:   flags,
		},
	})
	if err != nil {
		b.logger.Error("respond to %s: %v", i.ApplicationCommandData().Name, err)
	}
}

func (b *Bot) respondEmbed(s *discordgo.Session, i *discordgo.Interaction, embed *discordgo.MessageEmbed) {
	embed.Description = delivery.Truncate(embed.Description, maxEmbedLength)
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
	if err != nil {
		b.logger.Error("respond to %s: %v", i.ApplicationCommandData().Name, err)
	}
}

func (b *Bot) respondError(s *discordgo.Session, i *discordgo.Interaction, err error) {
	b.logger.Debug("command %s failed: %v", i.ApplicationCommandData().Name, err)
	b.respondMessage(s, i, delivery.ErrorMessage(err), true)
}

// deferResponse acknowledges slow commands; finish them with editResponse.
func (b *Bot) deferResponse(s *discordgo.Session, i *discordgo.Interaction) {
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		b.logger.Error("defer %s: %v", i.ApplicationCommandData().Name, err)
	}
}

func (b *Bot) editResponse(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) {
	if _, err := s.InteractionResponseEdit(i, edit); err != nil {
		b.logger.Error("edit response to %s: %v", i.ApplicationCommandData().Name, err)
	}
}

func (b *Bot) ensureAdmin(s *discordgo.Session, i *discordgo.Interaction, handler func(*discordgo.Session, *discordgo.Interaction)) {
	if !b.isAdmin(interactionUserID(i)) {
		b.respondMessage(s, i, msgNoRights, true)
		return
	}
	handler(s, i)
}
