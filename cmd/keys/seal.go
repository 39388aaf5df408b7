package keys

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"trading212/src/security"
)

// SealKey reads one API key line from in and writes the sealed value to out,
// ready to be stored as T212_API_KEY_SEALED, or T212_DEMO_API_KEY_SEALED when
// demo is set. It refuses to run without EXCHANGE_CREDENTIALS_KEY.
func SealKey(in io.Reader, out io.Writer, demo bool) error {
	sealer, err := security.NewSealerFromEnv()
	if err != nil {
		return fmt.Errorf("seal key: %w", err)
	}

	reader := bufio.NewScanner(in)
	reader.Buffer(make([]byte, 0, 1024), 64*1024)

	if !reader.Scan() {
		if err := reader.Err(); err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		return fmt.Errorf("no key given on stdin")
	}

	key := strings.TrimSpace(reader.Text())
	if key == "" {
		return fmt.Errorf("empty key")
	}

	sealed, err := sealer.Seal(key)
	if err != nil {
		return fmt.Errorf("seal key: %w", err)
	}

	name := "T212_API_KEY_SEALED"
	if demo {
		name = "T212_DEMO_API_KEY_SEALED"
	}
	_, err = fmt.Fprintf(out, "%s=%s\n", name, sealed)
	return err
}
