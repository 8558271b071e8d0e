// Command main runs the database seeder for Seedbed.
package main

import (
	"flag"
	"log"

	"seedbed/internal/config"
	"seedbed/internal/database"
	"seedbed/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 60, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Apply a named preset (tiny, demo, stress, or one from -preset-file)")
	presetFile := flag.String("preset-file", "", "YAML file with additional presets")
	flag.Parse()

	log.Println("🌱 Database Seeder")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.DefaultOptions()
	opts.NumUsers = *numUsers
	opts.NumPosts = *numPosts
	opts.ShouldClean = *shouldClean

	if *preset != "" {
		var extra []seed.Preset
		if *presetFile != "" {
			extra, err = seed.LoadPresets(*presetFile)
			if err != nil {
				log.Fatalf("Failed to load preset file: %v", err)
			}
		}
		p, ok := seed.FindPreset(*preset, extra)
		if !ok {
			log.Fatalf("Unknown preset %q", *preset)
		}
		log.Printf("Applying preset: %s", p.Name)
		opts = p.Options()
		opts.ShouldClean = *shouldClean
	}

	if err := seed.NewSeeder(db, opts).Seed(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("✨ All done! The database is populated with test data.")
	log.Println("📧 All seeded users have the password: password123")
}
