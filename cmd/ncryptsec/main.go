// Command ncryptsec wraps and unwraps a hex Nostr secret key as an
// ncryptsec1... string (NIP-49), prompting for the password on the
// terminal without echoing it.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"nostrcore/nip49"
)

func main() {
	encrypt := flag.Bool("encrypt", false, "wrap a hex secret key as ncryptsec1...")
	decrypt := flag.Bool("decrypt", false, "unwrap an ncryptsec1... string")
	logN := flag.Uint("log-n", 16, "scrypt cost exponent (N = 2^log-n), 1-22")
	flag.Parse()

	if *encrypt == *decrypt {
		fmt.Fprintln(os.Stderr, "exactly one of -encrypt or -decrypt is required")
		os.Exit(2)
	}

	switch {
	case *encrypt:
		runEncrypt(uint8(*logN))
	case *decrypt:
		runDecrypt()
	}
}

func runEncrypt(logN uint8) {
	seckeyHex, err := readInput("secret key (hex): ")
	if err != nil {
		fail(err)
	}
	password, err := readPassword("password: ")
	if err != nil {
		fail(err)
	}

	out, err := nip49.Encrypt(seckeyHex, password, logN, nip49.KeySecurityUnknown)
	if err != nil {
		fail(err)
	}
	fmt.Println(out)
}

func runDecrypt() {
	ncryptsec, err := readInput("ncryptsec1...: ")
	if err != nil {
		fail(err)
	}
	password, err := readPassword("password: ")
	if err != nil {
		fail(err)
	}

	seckeyHex, security, err := nip49.Decrypt(ncryptsec, password)
	if err != nil {
		fail(err)
	}
	fmt.Printf("%s (key-security: %d)\n", seckeyHex, security)
}

// readPassword reads a password from the terminal without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	fmt.Println()
	return string(bytePassword), nil
}

// readInput reads a line of plain (echoed) input.
func readInput(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
