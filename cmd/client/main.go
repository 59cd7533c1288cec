// Interactive line client: relays stdin to the server and prints each
// response block until its FIN sentinel.
package main

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"os"
)

func main() {
	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = "localhost:12345"
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		log.Fatalf("connect to %s: %v", addr, err)
	}
	defer conn.Close()
	fmt.Println("Connected to", addr)

	stdin := bufio.NewScanner(os.Stdin)
	responses := bufio.NewScanner(conn)

	for {
		fmt.Print("You: ")
		if !stdin.Scan() {
			return
		}
		line := stdin.Text()
		if _, err := fmt.Fprintln(conn, line); err != nil {
			log.Fatalf("send: %v", err)
		}
		if line == "quitter" {
			fmt.Println("Disconnecting...")
			return
		}
		fin := false
		for !fin && responses.Scan() {
			if responses.Text() == "FIN" {
				fin = true
				continue
			}
			fmt.Println("Server:", responses.Text())
		}
		if !fin {
			if err := responses.Err(); err != nil {
				log.Fatalf("read: %v", err)
			}
			fmt.Println("Server closed the connection.")
			return
		}
	}
}
