package main

import (
	"gloryboard-bot/bot"
	"gloryboard-bot/command"
	"gloryboard-bot/handlers"
)

func main() {
	bot.Run(handlers.Register, command.GetCommandDefinitions())
}
