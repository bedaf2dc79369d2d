package recipients

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads the recipient file at path and returns the addresses it holds,
// in file order. The returned slice is empty (not nil) when no line qualifies.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrReadFailed, fmt.Errorf("open %s: %w", path, err))
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads recipients from r, one per line.
// Both "\n" and "\r\n" line endings are accepted and lines have no length
// limit.
func Parse(r io.Reader) ([]string, error) {
	list := make([]string, 0)

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if addr, ok := normalize(line); ok {
			list = append(list, addr)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Join(ErrReadFailed, err)
		}
	}

	return list, nil
}

// normalize trims a raw line and reports whether it looks like an address.
func normalize(line string) (string, bool) {
	addr := strings.TrimSpace(line)
	if addr == "" || !strings.Contains(addr, "@") {
		return "", false
	}
	return addr, true
}

// Batches partitions list into consecutive chunks of at most size entries.
// Every chunk but the last has exactly size entries. A size below 1 yields a
// single batch holding the whole list. The chunks share list's backing array.
func Batches(list []string, size int) [][]string {
	if len(list) == 0 {
		return nil
	}
	if size < 1 || size > len(list) {
		size = len(list)
	}

	out := make([][]string, 0, BatchCount(len(list), size))
	for start := 0; start < len(list); start += size {
		end := min(start+size, len(list))
		out = append(out, list[start:end:end])
	}
	return out
}

// BatchCount returns ceil(n/size), the number of batches Batches produces.
func BatchCount(n, size int) int {
	if n <= 0 {
		return 0
	}
	if size < 1 {
		return 1
	}
	return (n + size - 1) / size
}
