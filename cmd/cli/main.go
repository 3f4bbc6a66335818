package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/infrastructure/config"
	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "depositctl",
		Short: "Time deposit CLI tool",
		Long:  `A command line interface for managing time deposits and running interest accrual.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the time deposit API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Deposit commands
	depositsCmd := &cobra.Command{
		Use:   "deposits",
		Short: "Time deposit operations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all time deposits",
		Run: func(cmd *cobra.Command, args []string) {
			listDeposits()
		},
	}

	accrueCmd := &cobra.Command{
		Use:   "accrue",
		Short: "Run interest accrual across all time deposits",
		Run: func(cmd *cobra.Command, args []string) {
			runAccrual()
		},
	}

	var (
		createPlan    string
		createBalance string
		createDays    int
	)
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a time deposit",
		Run: func(cmd *cobra.Command, args []string) {
			createDeposit(createPlan, createBalance, createDays)
		},
	}
	createCmd.Flags().StringVar(&createPlan, "plan", "basic", "Plan type (basic, student, premium)")
	createCmd.Flags().StringVar(&createBalance, "balance", "0", "Opening balance")
	createCmd.Flags().IntVar(&createDays, "days", 0, "Days since the deposit was opened")

	depositsCmd.AddCommand(listCmd, accrueCmd, createCmd)
	rootCmd.AddCommand(depositsCmd)

	// Migration commands
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath)
		},
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func listDeposits() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/time-deposits")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("List FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var deposits []map[string]any
	if err := json.Unmarshal(body, &deposits); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-28s %-10s %6s %12s\n", "ID", "PLAN", "DAYS", "BALANCE")
	for _, td := range deposits {
		fmt.Printf("%-28v %-10v %6v %12v\n", td["id"], td["planType"], td["days"], td["balance"])
	}
}

func runAccrual() {
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequest(http.MethodPut, baseURL+"/api/v1/time-deposits/updateBalances", nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Accrual FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Accrual PASSED\n")
	fmt.Printf("Message: %s\n", result["message"])
	if count, ok := result["updatedCount"].(float64); ok {
		fmt.Printf("Updated: %d\n", int(count))
	}
}

func createDeposit(plan, balance string, days int) {
	payload, err := json.Marshal(map[string]any{
		"planType": plan,
		"balance":  balance,
		"days":     days,
	})
	if err != nil {
		fmt.Printf("Failed to build payload: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/time-deposits", "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		fmt.Printf("Create FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var created map[string]any
	if err := json.Unmarshal(body, &created); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created time deposit %v (plan=%v days=%v balance=%v)\n",
		created["id"], created["planType"], created["days"], created["balance"])
}
