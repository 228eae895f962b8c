package config

import "github.com/urfave/cli/v3"

// Telegram holds Telegram Bot API configuration
type Telegram struct {
	BotToken string `masq:"secret"`
	ChatID   string
}

// Flags returns CLI flags for Telegram configuration
func (c *Telegram) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "telegram-bot-token",
			Usage:       "Telegram bot token",
			Required:    true,
			Destination: &c.BotToken,
			Sources:     cli.EnvVars("TELEGRAM_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "telegram-chat-id",
			Usage:       "Destination chat ID for notifications",
			Required:    true,
			Destination: &c.ChatID,
			Sources:     cli.EnvVars("TELEGRAM_CHAT_ID"),
		},
	}
}
