package cli

import (
	"context"
	"fmt"
	"log"
	"strings"
)

func (a *App) status() string {
	if user := a.controller.CurrentUser(); user != nil {
		return fmt.Sprintf("(%s)", user.Name)
	}
	return ""
}

func (a *App) root(ctx context.Context) {
	log.Println("Welcome to CapiFit CLI (type 'help' for commands)")

	if ok, err := a.controller.Restore(ctx); err != nil {
		log.Printf("could not restore session: %s", err)
	} else if ok {
		fmt.Println("Session restored.")
		a.refresh(ctx)
	}

	// The loop reads commands through the same buffered reader the prompts
	// use, so read-ahead cannot swallow lines destined for a prompt.
	for {
		fmt.Printf("capifit %s> ", a.status())
		line, err := a.reader.ReadString('\n')
		if parts := strings.Fields(line); len(parts) > 0 {
			if a.dispatch(ctx, parts[0]) {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// dispatch runs one command; it reports true when the REPL should exit.
func (a *App) dispatch(ctx context.Context, cmd string) bool {
	switch cmd {
	case "help":
		if a.controller.LoggedIn() {
			fmt.Println("Available commands: refresh, students, add-student, plans, add-plan, assign, suggest, logout, exit")
		} else {
			fmt.Println("Available commands: register, login, exit")
		}
	case "register":
		a.register(ctx)
	case "login":
		a.login(ctx)
	case "logout":
		a.controller.ForceLogout()
		fmt.Println("Logged out.")
	case "refresh":
		a.refresh(ctx)
	case "students":
		a.listStudents()
	case "add-student":
		a.addStudent(ctx)
	case "plans":
		a.listPlans(ctx)
	case "add-plan":
		a.addPlan(ctx)
	case "assign":
		a.assignPlan(ctx)
	case "suggest":
		a.suggest(ctx)
	case "exit", "quit":
		fmt.Println("Bye!")
		return true
	default:
		fmt.Println("Unknown command:", cmd)
	}
	return false
}
