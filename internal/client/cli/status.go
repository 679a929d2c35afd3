package cli

import (
	"context"
	"fmt"
)

// Whoami prints the current session state.
func (a *App) Whoami(ctx context.Context) error {
	st := a.controller.State()
	if st.User == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("Logged in as %s (id %s, registered %s)\n", st.User.Email, st.User.ID, st.User.CreatedAt)
	return nil
}

// Ping probes the server's /health endpoint and reports reachability.
func (a *App) Ping(ctx context.Context) error {
	if err := a.client.Health(ctx); err != nil {
		fmt.Printf("Server unreachable: %s\n", err.Error())
		return err
	}
	fmt.Println("Server is up")
	return nil
}
