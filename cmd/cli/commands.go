package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

var tournamentID string

func init() {
	calculateCmd.Flags().StringVar(&tournamentID, "tournament", "", "The tournament id")
	calculateCmd.MarkFlagRequired("tournament")
	leaderboardCmd.Flags().StringVar(&tournamentID, "tournament", "", "The tournament id")
	leaderboardCmd.MarkFlagRequired("tournament")
	rosterCmd.Flags().StringVar(&tournamentID, "tournament", "", "The tournament id")
	rosterCmd.MarkFlagRequired("tournament")
	finalizeCmd.Flags().StringVar(&tournamentID, "tournament", "", "The tournament id")
	finalizeCmd.MarkFlagRequired("tournament")
	standingsCmd.Flags().StringVar(&tournamentID, "tournament", "", "The tournament id")
	standingsCmd.MarkFlagRequired("tournament")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(finalizeCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments",
	Short: "List all tournaments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/tournaments")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List all registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Recalculate the Frutales points for a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/frutales/calculate?tournamentID=" + tournamentID)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the raw leaderboard of a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard?tournamentID=" + tournamentID)
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Show the merged Frutales roster of a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/frutales/roster?tournamentID=" + tournamentID)
	},
}

var finalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "Finalize a tournament and publish the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/tournaments/finalize?id=" + tournamentID)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Post the current standings of a tournament to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/notify-standings?id=" + tournamentID)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", strings.NewReader(""))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
