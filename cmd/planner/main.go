package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ChamsBouzaiene/voyager/internal/engine"
	"github.com/ChamsBouzaiene/voyager/internal/factory"
	"github.com/ChamsBouzaiene/voyager/internal/session"
)

func main() {
	// Load .env file if present; stored config fills in the rest
	_ = godotenv.Load()

	ctx := context.Background()

	if err := run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("planner", flag.ExitOnError)
	sessionFlag := fs.String("session", "", "Session id to resume or create (default: trip-<YYYYMMDD>)")
	messageFlag := fs.String("message", "", "Run a single message instead of the interactive loop")
	listFlag := fs.Bool("list", false, "List stored sessions and exit")
	dataFlag := fs.String("data", "", "Data directory override (default: user config dir)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	env, err := prepareRuntimeEnv(ctx, *dataFlag)
	if err != nil {
		return err
	}
	defer env.Close()

	if *listFlag {
		return listSessions(env.Sessions)
	}

	sessionID := *sessionFlag
	if sessionID == "" {
		sessionID = fmt.Sprintf("trip-%s", time.Now().UTC().Format("20060102"))
	}

	agent, err := factory.BuildPlannerAgent(ctx, env.Itineraries, env.Clients)
	if err != nil {
		return fmt.Errorf("failed to build planner agent: %w", err)
	}

	transcript := loadOrCreateSession(env.Sessions, sessionID)
	for _, msg := range transcript.History {
		agent.Append(msg)
	}
	if len(transcript.History) > 0 {
		log.Printf("resumed session %s (%d messages)", sessionID, len(transcript.History))
	}

	if *messageFlag != "" {
		return runTurn(ctx, agent, env.Sessions, transcript, *messageFlag)
	}

	runInteractive(ctx, agent, env.Sessions, transcript)
	return nil
}

func runInteractive(ctx context.Context, agent *engine.Agent, store *session.Store, transcript *session.Session) {
	log.Printf("planner ready (session: %s)", transcript.ID)

	s := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !s.Scan() {
			break
		}
		line := s.Text()
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		if err := runTurn(ctx, agent, store, transcript, line); err != nil {
			log.Printf("error: %v", err)
		}
		fmt.Println()
	}
}

// runTurn executes one user message and persists the transcript,
// whether or not the turn succeeded, so partial progress survives.
func runTurn(ctx context.Context, agent *engine.Agent, store *session.Store, transcript *session.Session, message string) error {
	runErr := agent.Run(ctx, message)

	if transcript.Title == "" {
		transcript.Title = truncate(message, 60)
	}
	if st := agent.LastState(); st != nil {
		transcript.History = withoutSystem(st.History)
	}
	transcript.UpdatedAt = time.Now()

	if err := store.Save(transcript); err != nil {
		log.Printf("failed to save session: %v", err)
	}

	return runErr
}

// withoutSystem drops system messages from a history. The system prompt
// is rebuilt on every start, so persisting it would pin stale content.
func withoutSystem(history []engine.ChatMessage) []engine.ChatMessage {
	out := make([]engine.ChatMessage, 0, len(history))
	for _, msg := range history {
		if msg.Role == engine.RoleSystem {
			continue
		}
		out = append(out, msg)
	}
	return out
}

func loadOrCreateSession(store *session.Store, id string) *session.Session {
	if store.Exists(id) {
		if loaded, err := store.Load(id); err == nil {
			return loaded
		} else {
			log.Printf("failed to load session %s: %v (starting fresh)", id, err)
		}
	}
	now := time.Now()
	return &session.Session{ID: id, CreatedAt: now, UpdatedAt: now}
}

func listSessions(store *session.Store) error {
	sessions, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("no stored sessions")
		return nil
	}
	for _, meta := range sessions {
		title := meta.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s  %s  %d messages  updated %s\n",
			meta.ID, title, meta.Messages, meta.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
