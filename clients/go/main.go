// Courier CLI - Command line client for the Courier mailbox router
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/eldtechnologies/courier/clients/go/courier"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	baseURL := os.Getenv("COURIER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := courier.NewClient(baseURL, os.Getenv("COURIER_FROM"))
	cmd := os.Args[1]

	switch cmd {
	case "health":
		resp, err := client.Health()
		exitOnError(err)
		printJSON(resp)

	case "participants":
		resp, err := client.Participants()
		exitOnError(err)
		for _, p := range resp.Participants {
			fmt.Printf("  %s (%d pending)\n", p.ID, p.Pending)
		}

	case "send":
		if len(os.Args) < 5 {
			fmt.Fprintln(os.Stderr, "Usage: courier send <to> <type> <payload-json>")
			os.Exit(1)
		}
		payload := parsePayload(os.Args[4])
		resp, err := client.Send(os.Args[2], os.Args[3], payload)
		exitOnError(err)
		fmt.Printf("Sent: %s\n", resp.ID)

	case "broadcast":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "Usage: courier broadcast <type> <payload-json>")
			os.Exit(1)
		}
		payload := parsePayload(os.Args[3])
		resp, err := client.Broadcast(os.Args[2], payload)
		exitOnError(err)
		fmt.Printf("Broadcast %s delivered to %d participants\n", resp.BroadcastID, resp.Delivered)

	case "next":
		msg, err := client.Next()
		exitOnError(err)
		if msg == nil {
			fmt.Println("Inbox empty")
			return
		}
		printMessage(*msg)

	case "inbox":
		resp, err := client.Inbox()
		exitOnError(err)
		fmt.Printf("%d pending\n", resp.Pending)
		if resp.Head != nil {
			printMessage(*resp.Head)
		}

	case "log":
		resp, err := client.Log(20, 0)
		exitOnError(err)
		for _, msg := range resp.Messages {
			printMessage(msg)
		}
		fmt.Printf("(%d of %d messages)\n", len(resp.Messages), resp.Total)

	case "stats":
		resp, err := client.Stats()
		exitOnError(err)
		printJSON(resp)

	case "help", "--help", "-h":
		usage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func parsePayload(raw string) map[string]any {
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		fmt.Fprintln(os.Stderr, "Error: payload must be a JSON object")
		os.Exit(1)
	}
	return payload
}

func printMessage(msg courier.Message) {
	ts := time.UnixMilli(msg.Timestamp).Format("2006-01-02 15:04:05")
	fmt.Printf("[%s] %s -> %s (%s)", ts, msg.From, msg.To, msg.Type)
	if len(msg.Payload) > 0 {
		data, _ := json.Marshal(msg.Payload)
		fmt.Printf(" %s", data)
	}
	fmt.Println()
}

func usage() {
	fmt.Println(`Courier CLI - task-routing mailbox client

Usage: courier <command> [options]

Commands:
  send <to> <type> <payload>   Send a message to one participant
  broadcast <type> <payload>   Send to all other participants
  next                         Poll own inbox (destructive)
  inbox                        Show pending count and next message
  participants                 List participants and queue depths
  log                          Show the audit log
  stats                        Show routing statistics
  health                       Check server health

Environment:
  COURIER_URL    Server URL (default: http://localhost:8080)
  COURIER_FROM   Participant ID used as sender`)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printJSON(v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}
