package bot

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gloryboard-bot/config"
	"gloryboard-bot/database"
	"gloryboard-bot/grpc"
	"gloryboard-bot/starboard"
	"gloryboard-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// Bot encapsulates the bot's state.
type Bot struct {
	Session *discordgo.Session
	DB      *sql.DB
	Boards  *database.BoardStore
	Links   *database.LinkStore
	Engine  *starboard.Engine
	health  *grpc.HealthServer
}

// NewBot creates and initializes a new Bot instance.
func NewBot() (*Bot, error) {
	config.LoadConfig()
	token := viper.GetString("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("no bot token provided")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsGuildMessageReactions

	db, err := database.InitDB(viper.GetString("bot.databasePath"))
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	boards := database.NewBoardStore(db)
	links := database.NewLinkStore(db)

	return &Bot{
		Session: dg,
		DB:      db,
		Boards:  boards,
		Links:   links,
	}, nil
}

// Start opens the bot's session, wires the engine and registers handlers.
func (b *Bot) Start(registerHandlers func(*Bot), commands []*discordgo.ApplicationCommand) error {
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	// The engine needs the bot's own user ID to keep it out of reactor
	// counts, so it is wired after the session is open and before any
	// handler can fire.
	surface := starboard.NewDiscordSurface(b.Session)
	b.Engine = starboard.NewEngine(b.Boards, b.Links, surface, b.Session.State.User.ID)

	utils.InitLogger(b.Session)
	registerHandlers(b)

	// Register slash commands
	for _, cmd := range commands {
		if _, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, "", cmd); err != nil {
			log.Printf("Cannot create '%v' command: %v", cmd.Name, err)
		}
	}

	if addr := viper.GetString("grpc.healthAddress"); addr != "" {
		b.health = grpc.NewHealthServer()
		if err := b.health.Start(addr); err != nil {
			log.Printf("Cannot start gRPC health server on %s: %v", addr, err)
		} else {
			b.health.SetServing(true)
		}
	}

	startScheduler(b.Engine)

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully closes the bot's session and resources.
func (b *Bot) Stop() {
	stopScheduler()
	if b.health != nil {
		b.health.SetServing(false)
		b.health.Stop()
	}
	if b.Session != nil {
		b.Session.Close()
	}
	if b.DB != nil {
		b.DB.Close()
	}
	fmt.Println("Bot stopped gracefully.")
}

// Run is the main entry point for the bot application.
func Run(registerHandlers func(*Bot), commands []*discordgo.ApplicationCommand) {
	bot, err := NewBot()
	if err != nil {
		log.Fatalf("Error initializing bot: %v", err)
	}

	if err := bot.Start(registerHandlers, commands); err != nil {
		log.Fatalf("Error starting bot: %v", err)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	bot.Stop()
}
