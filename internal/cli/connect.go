package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/gamearcade/matchserv/internal/protocol"
)

func newConnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Open an interactive session against the server",
		Long: `Reads commands from stdin and prints every server frame.

Commands:
  login <name> <password>
  register <name> <password>
  find
  move <c0> <c1> ... <c8>    (cells: 0 empty, 1 player1, 2 player2)
  restart
  chat <text>
  rooms
  spectate <roomId>
  leave
  quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnect()
		},
	}
}

func runConnect() error {
	conn, _, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", serverURL, err)
	}
	defer conn.Close()

	fmt.Printf("connected to %s\n", serverURL)

	// Print inbound frames until the connection closes.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				fmt.Println("connection closed")
				return
			}
			printFrame(string(raw))
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-done:
			return nil
		default:
		}

		msg, quit, err := parseCommand(scanner.Text())
		if err != nil {
			fmt.Println(err)
			continue
		}
		if quit {
			return nil
		}
		if msg == nil {
			continue
		}

		frame, err := msg.Encode()
		if err != nil {
			fmt.Println(err)
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
			return fmt.Errorf("writing frame: %w", err)
		}
	}
	return scanner.Err()
}

// parseCommand maps one stdin line to a wire message. A nil message with no
// error means an empty line.
func parseCommand(line string) (*protocol.Message, bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, false, nil
	}

	switch fields[0] {
	case "quit", "exit":
		return nil, true, nil
	case "login", "register":
		if len(fields) != 3 {
			return nil, false, fmt.Errorf("usage: %s <name> <password>", fields[0])
		}
		tag := protocol.TagLogin
		if fields[0] == "register" {
			tag = protocol.TagRegister
		}
		return &protocol.Message{Tag: tag, Fields: fields[1:]}, false, nil
	case "find":
		return &protocol.Message{Tag: protocol.TagFindMatch}, false, nil
	case "move":
		if len(fields) != 10 {
			return nil, false, fmt.Errorf("usage: move <c0> ... <c8>")
		}
		return &protocol.Message{
			Tag:    protocol.TagMove,
			Fields: []string{strings.Join(fields[1:], " ")},
		}, false, nil
	case "restart":
		return &protocol.Message{Tag: protocol.TagRestart}, false, nil
	case "chat":
		if len(fields) < 2 {
			return nil, false, fmt.Errorf("usage: chat <text>")
		}
		return &protocol.Message{
			Tag:    protocol.TagChat,
			Fields: []string{strings.Join(fields[1:], " ")},
		}, false, nil
	case "rooms":
		return &protocol.Message{Tag: protocol.TagSpectateList}, false, nil
	case "spectate":
		if len(fields) != 2 {
			return nil, false, fmt.Errorf("usage: spectate <roomId>")
		}
		return &protocol.Message{Tag: protocol.TagSpectateGame, Fields: fields[1:]}, false, nil
	case "leave":
		return &protocol.Message{Tag: protocol.TagLeaveGame}, false, nil
	default:
		return nil, false, fmt.Errorf("unknown command %q", fields[0])
	}
}

func printFrame(raw string) {
	resp, err := protocol.DecodeResponse(raw)
	if err != nil {
		fmt.Printf("<< %s\n", raw)
		return
	}
	line := fmt.Sprintf("<< [%s] %s: %s", resp.Status, resp.Tag, resp.Reason)
	if len(resp.Payload) > 0 {
		line += " | " + strings.Join(resp.Payload, " | ")
	}
	fmt.Println(line)
}
