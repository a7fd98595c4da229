package command

import "github.com/bwmarrin/discordgo"

// GloryboardCommand defines the structure for the /gloryboard command.
type GloryboardCommand struct{}

// Definition returns the application command definition.
func (c *GloryboardCommand) Definition() *discordgo.ApplicationCommand {
	manageChannels := int64(discordgo.PermissionManageChannels)
	return &discordgo.ApplicationCommand{
		Name:                     "gloryboard",
		Description:              "Manage reaction-threshold boards",
		DefaultMemberPermissions: &manageChannels,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "set",
				Description: "Set or update the gloryboard on a channel",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "channel",
						Description: "The channel to post highlights to",
						Type:        discordgo.ApplicationCommandOptionChannel,
						ChannelTypes: []discordgo.ChannelType{
							discordgo.ChannelTypeGuildText,
							discordgo.ChannelTypeGuildForum,
						},
						Required: true,
					},
					{
						Name:        "minimum",
						Description: "Reactions needed before a message is mirrored",
						Type:        discordgo.ApplicationCommandOptionInteger,
						MinValue:    &minimumFloor,
						MaxValue:    1000,
						Required:    false,
					},
					{
						Name:        "emoji",
						Description: "The emoji to track reactions with",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    false,
					},
					{
						Name:        "color",
						Description: "Embed color in hexadecimal (#00FF00)",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    false,
					},
				},
			},
			{
				Name:        "disable",
				Description: "Disable the gloryboard on a channel",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "channel",
						Description: "The channel to disable the gloryboard in",
						Type:        discordgo.ApplicationCommandOptionChannel,
						ChannelTypes: []discordgo.ChannelType{
							discordgo.ChannelTypeGuildText,
							discordgo.ChannelTypeGuildForum,
						},
						Required: true,
					},
				},
			},
		},
	}
}

var minimumFloor = float64(1)

// PingCommand defines the structure for the /ping command.
type PingCommand struct{}

// Definition returns the application command definition.
func (c *PingCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Responds with Pong!",
	}
}
