package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"google.golang.org/genai"

	"werewolf/actor"
	"werewolf/config"
	"werewolf/game"
	"werewolf/prompts"
	"werewolf/transcript"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	setupPath := flag.String("setup", "game.yaml", "path to the game setup file")
	flag.Parse()

	setup, err := config.LoadSetup(*setupPath)
	if err != nil {
		log.Fatal("Invalid game setup: ", err)
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: config.GetGeminiAPIKey(),
	})
	if err != nil {
		log.Fatal("Failed to create Gemini client: ", err)
	}

	stdin := bufio.NewReader(os.Stdin)
	for {
		if err := runGame(ctx, setup, client); err != nil {
			log.Printf("Game ended with error: %v", err)
		}

		fmt.Print("\nPlay another game? (y/n): ")
		line, err := stdin.ReadString('\n')
		if err != nil || strings.ToLower(strings.TrimSpace(line)) != "y" {
			fmt.Println("Thanks for playing.")
			return
		}
	}
}

// runGame deals roles, binds seats to actors and drives one game to
// completion.
func runGame(ctx context.Context, setup *config.Setup, client *genai.Client) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	gameID := uuid.NewString()

	sink, err := buildSink(ctx, gameID)
	if err != nil {
		return err
	}
	defer sink.Close()

	roles := setup.DealRoles(rng)
	seats := make([]*game.Seat, 0, setup.NumSeats)
	for i, roleName := range roles {
		role, err := game.ParseRole(roleName)
		if err != nil {
			return err
		}
		id := fmt.Sprintf("seat_%d", i+1)
		var a actor.Actor
		if setup.SeatHuman(i) {
			a = actor.NewHumanActor(id, os.Stdin, os.Stdout)
			fmt.Printf("\nYou control %s. Your secret role: %s\n", id, prompts.RoleLabel(roleName))
		} else {
			a = actor.NewLLMActor(id, client, setup.SeatModel(i), setup.Models,
				prompts.System(id, roleName), rng)
		}
		seats = append(seats, &game.Seat{ID: id, Role: role, Actor: a})
	}

	summaryModel := setup.SummaryModel
	if summaryModel == "" {
		summaryModel = config.GetSummaryModel()
	}
	summarizer := actor.NewLLMActor("summarizer", client, summaryModel, setup.Models,
		"You are a neutral scribe for a werewolf game.", rng)

	engine, err := game.New(game.Config{
		Seats:      seats,
		Summarizer: summarizer,
		Sink:       sink,
		Rand:       rng,
		GameID:     gameID,
	})
	if err != nil {
		return err
	}

	log.Printf("[GAME] starting game %s", gameID)
	return engine.Run(ctx)
}

// buildSink assembles the transcript sinks: always a local file, plus
// MongoDB when a URI is configured. A Mongo connection failure only
// costs the durable copy, never the game.
func buildSink(ctx context.Context, gameID string) (transcript.Sink, error) {
	file, err := transcript.NewFileSink("logs", gameID)
	if err != nil {
		return nil, err
	}
	sinks := transcript.Multi{file}

	if uri := config.GetMongoDBURI(); uri != "" {
		mongoSink, err := transcript.NewMongoSink(ctx, uri)
		if err != nil {
			log.Printf("Warning: MongoDB transcript sink unavailable: %v", err)
		} else {
			sinks = append(sinks, mongoSink)
		}
	}
	return sinks, nil
}
