package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/slack-go/slack"
	"github.com/xhhuango/json"

	"github.com/quantforge/qfin/batch"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatal("Error loading .env file")
	}

	portfolioFile := flag.String("portfolio", "portfolio.json", "portfolio JSON to price")
	outFile := flag.String("out", "results.json", "output file for priced results")
	workers := flag.Int("workers", 0, "worker count (0 = logical CPU count)")
	flag.Parse()

	raw, err := ioutil.ReadFile(*portfolioFile)
	if err != nil {
		log.Fatalf("Error reading portfolio %s: %s", *portfolioFile, err.Error())
	}

	var items []batch.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Fatalf("Error parsing portfolio %s: %s", *portfolioFile, err.Error())
	}
	if len(items) == 0 {
		fmt.Println("Empty portfolio, nothing to price.")
		return
	}

	fmt.Printf("Pricing %d positions across %d workers\n", len(items), pickWorkers(*workers))

	results := batch.Run(items, *workers)

	failed := 0
	for _, r := range results {
		if r.Err != "" {
			failed++
			fmt.Printf("Position %s (%s) failed: %s\n", r.ID, r.Model, r.Err)
		}
	}

	jresults, err := json.Marshal(results)
	if err != nil {
		fmt.Printf("Error marshalling results: %s\n", err.Error())
		return
	}

	if err := ioutil.WriteFile(*outFile, jresults, 0644); err != nil {
		fmt.Printf("Error writing to file %s: %s\n", *outFile, err.Error())
		return
	}

	summary := fmt.Sprintf("Priced %d positions (%d failed), results in %s", len(results), failed, *outFile)
	fmt.Println(summary)

	notifySlack(summary)
}

func pickWorkers(n int) int {
	if n > 0 {
		return n
	}
	return batch.Workers()
}

// notifySlack posts the run summary when SLACK_TOKEN and SLACK_CHANNEL are
// set. A missing token just skips the notification.
func notifySlack(summary string) {
	token := os.Getenv("SLACK_TOKEN")
	channel := os.Getenv("SLACK_CHANNEL")
	if token == "" || channel == "" {
		return
	}

	client := slack.New(token)
	if _, _, err := client.PostMessage(channel, slack.MsgOptionText(summary, false)); err != nil {
		fmt.Printf("Error posting to slack: %s\n", err.Error())
	}
}
