package bot

import (
	"log"

	"gloryboard-bot/starboard"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

var c *cron.Cron

// startScheduler starts the cron jobs.
func startScheduler(engine *starboard.Engine) {
	log.Println("Initializing scheduler...")
	c = cron.New()
	_, err := c.AddFunc("@hourly", func() {
		log.Println("Running hourly reconcile sweep...")
		engine.Reconcile()
	})
	if err != nil {
		log.Fatalf("Could not set up cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduled to run hourly.")

	// Catch up on events missed while offline, if configured.
	if viper.GetBool("bot.reconcileAtStartup") {
		go func() {
			log.Println("Performing initial reconcile sweep on startup...")
			engine.Reconcile()
		}()
	} else {
		log.Println("Skipping initial reconcile sweep as per configuration.")
	}
}

// stopScheduler stops the cron jobs.
func stopScheduler() {
	if c != nil {
		c.Stop()
		log.Println("Scheduler stopped.")
	}
}
