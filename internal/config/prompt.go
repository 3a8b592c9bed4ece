package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"kquant/internal/kmeans"
)

type question struct {
	text    string
	current string
	apply   func(answer string) error
}

// Prompt asks for input, output, k, iterations and mode, one line each.
// An empty answer keeps the current value when there is one; invalid
// answers are reported and asked again.
func (c *Config) Prompt(r io.Reader, w io.Writer) error {
	questions := []question{
		{"Enter input path", c.Input, func(s string) error {
			if !strings.Contains(s, "://") {
				if _, err := os.Stat(s); err != nil {
					return err
				}
			}
			c.Input = s
			return nil
		}},
		{"Enter output path", c.Output, func(s string) error {
			c.Output = s
			return nil
		}},
		{"Enter K value", itoa(c.K), func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return fmt.Errorf("not a positive integer")
			}
			c.K = n
			return nil
		}},
		{"Enter # of iterations", itoa(c.Iterations), func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return fmt.Errorf("not a non-negative integer")
			}
			c.Iterations = n
			return nil
		}},
		{"Create palette? (y/n)", "", func(s string) error {
			switch strings.ToLower(s) {
			case "y", "yes":
				c.Mode = kmeans.ModePalette.String()
			case "n", "no":
				c.Mode = kmeans.ModeImage.String()
			default:
				return fmt.Errorf("answer y or n")
			}
			return nil
		}},
	}

	scanner := bufio.NewScanner(r)
	for _, q := range questions {
		if err := ask(scanner, w, q); err != nil {
			return err
		}
	}
	return nil
}

func ask(scanner *bufio.Scanner, w io.Writer, q question) error {
	if q.current != "" {
		fmt.Fprintf(w, "%s [%s]: ", q.text, q.current)
	} else {
		fmt.Fprintf(w, "%s: ", q.text)
	}
	for {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return io.ErrUnexpectedEOF
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" && q.current != "" {
			answer = q.current
		}
		if answer != "" {
			if err := q.apply(answer); err == nil {
				return nil
			}
		}
		fmt.Fprintf(w, "invalid input %q please try again\n%s: ", answer, q.text)
	}
}

func itoa(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
