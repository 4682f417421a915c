package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"assassin/internal/models"
)

type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) options {
	m := make(options, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

func (o options) string(name string) string {
	if opt, ok := o[name]; ok {
		return strings.TrimSpace(opt.StringValue())
	}
	return ""
}

func (o options) int(name string, def int) int {
	if opt, ok := o[name]; ok {
		return int(opt.IntValue())
	}
	return def
}

func (o options) code() string {
	return strings.ToUpper(o.string(optCode))
}

// interactionUserID returns the raw Discord user ID. Guild interactions carry
// Member, DMs carry User.
func interactionUserID(i *discordgo.Interaction) string {
	switch {
	case i.Member != nil && i.Member.User != nil:
		return i.Member.User.ID
	case i.User != nil:
		return i.User.ID
	}
	return ""
}

func interactionUserName(i *discordgo.Interaction) string {
	var u *discordgo.User
	switch {
	case i.Member != nil && i.Member.User != nil:
		if i.Member.Nick != "" {
			return i.Member.Nick
		}
		u = i.Member.User
	case i.User != nil:
		u = i.User
	default:
		return ""
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

func userKey(discordID string) string {
	return userIDPrefix + discordID
}

func statusColor(status models.GameStatus) int {
	switch status {
	case models.GameActive:
		return colorGreen
	case models.GameFinished:
		return colorRed
	default:
		return colorGray
	}
}
