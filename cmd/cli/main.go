// cmd/cli/main.go

// Terminal client for the finance tracker API. Reads credentials
// interactively (password without echo), then runs a single subcommand
// against the server configured via API_BASE_URL.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"finance-tracker/internal/client"
	"finance-tracker/internal/config"

	"golang.org/x/term"
)

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	cfg := config.MustLoad()
	api := client.New(cfg.APIBaseURL)
	ctx := context.Background()

	var err error
	switch args[0] {
	case "register":
		err = runRegister(ctx, api)
	case "list":
		err = runWithLogin(ctx, api, func() error { return runList(ctx, api) })
	case "add":
		err = runWithLogin(ctx, api, func() error { return runAdd(ctx, api, args[1:]) })
	case "summary":
		err = runWithLogin(ctx, api, func() error { return runSummary(ctx, api) })
	case "interest":
		err = runInterest(ctx, api, args[1:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: cli <command>

Commands:
  register                      create an account
  list                          print your transactions
  add <desc> <amount> <cat>     record a transaction (date = now)
  summary                       totals by category
  interest <principal> <rate> <years>   compound interest projection`)
}

func runWithLogin(ctx context.Context, api *client.Client, fn func() error) error {
	username, password, err := promptCredentials()
	if err != nil {
		return err
	}
	if err := api.Login(ctx, username, password); err != nil {
		return err
	}
	return fn()
}

func runRegister(ctx context.Context, api *client.Client) error {
	username, password, err := promptCredentials()
	if err != nil {
		return err
	}
	if err := api.Register(ctx, username, password); err != nil {
		return err
	}
	fmt.Println("Registered.")
	return nil
}

func runList(ctx context.Context, api *client.Client) error {
	state := client.NewController(api)
	if err := state.Refresh(ctx); err != nil {
		return err
	}
	list := state.Transactions()
	if len(list) == 0 {
		fmt.Println("No transactions.")
		return nil
	}
	for _, t := range list {
		fmt.Printf("#%d\t%s\t$%.2f\t%s\t%s\n", t.ID, t.Description, t.Amount, t.Category, t.Date)
	}
	fmt.Printf("Total: $%.2f  Average: $%.2f\n", state.TotalSpent(), state.AverageAmount())
	return nil
}

func runAdd(ctx context.Context, api *client.Client, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: add <description> <amount> <category>")
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}
	date := time.Now().UTC().Format(time.RFC3339)
	id, err := api.CreateTransaction(ctx, args[0], amount, args[2], date)
	if err != nil {
		return err
	}
	fmt.Printf("Created #%d\n", id)
	return nil
}

func runSummary(ctx context.Context, api *client.Client) error {
	summary, err := api.CategorySummary(ctx)
	if err != nil {
		return err
	}
	if len(summary) == 0 {
		fmt.Println("No transactions.")
		return nil
	}
	for _, cs := range summary {
		fmt.Printf("%s\t$%.2f\n", cs.Category, cs.Amount)
	}
	return nil
}

func runInterest(ctx context.Context, api *client.Client, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: interest <principal> <rate> <years>")
	}
	principal, err1 := strconv.ParseFloat(args[0], 64)
	rate, err2 := strconv.ParseFloat(args[1], 64)
	years, err3 := strconv.ParseFloat(args[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return fmt.Errorf("all arguments must be numbers")
	}
	futureValue, err := api.CalculateInterest(ctx, principal, rate, years)
	if err != nil {
		return err
	}
	fmt.Printf("Future value: $%.2f\n", futureValue)
	return nil
}

func promptCredentials() (string, string, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	username = trimLine(username)

	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", err
	}
	return username, string(pw), nil
}

func trimLine(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
