// Command seed loads the demo plant collection into the GrowLog database.
// It accepts the server flags plus -email to pick the target account.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/growlog/internal/flagx"
	"github.com/dmitrijs2005/growlog/internal/server"
	"github.com/dmitrijs2005/growlog/internal/server/config"
	"github.com/dmitrijs2005/growlog/internal/server/services"
)

func parseEmail(args []string) string {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	email := fs.String("email", services.DemoEmail, "account that receives the demo plants")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-email"})); err != nil {
		panic(err)
	}
	return *email
}

func printResult(w io.Writer, res *services.SeedResult) {
	if res.UserCreated {
		fmt.Fprintf(w, "User created: %s (%s)\n", res.User.Name, res.User.Email)
	} else {
		fmt.Fprintf(w, "User found: %s (%s)\n", res.User.Name, res.User.Email)
	}
	if res.Deleted > 0 {
		fmt.Fprintf(w, "Deleted %d existing plants\n", res.Deleted)
	}
	for i, p := range res.Created {
		fmt.Fprintf(w, "  %d/%d - %s (%s)\n", i+1, len(res.Created), p.Name, p.Phase)
	}
	fmt.Fprintln(w, "\nSummary:")
	for _, c := range res.Summary {
		fmt.Fprintf(w, "  %s: %d plants\n", c.Label, c.Count)
	}
}

type seeder interface {
	Seed(ctx context.Context, email string) (*services.SeedResult, error)
	Close() error
}

// run seeds email through app and prints the result. app is closed before
// run returns.
func run(ctx context.Context, app seeder, email string, w io.Writer) error {
	defer app.Close()

	res, err := app.Seed(ctx, email)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	printResult(w, res)
	return nil
}

func main() {

	ctx := context.Background()
	email := parseEmail(os.Args[1:])
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := run(ctx, app, email, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}
