package hargen

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// used when /usr/share/dict/words doesn't exist (windows, containers)
var fallbackWords = []string{
	"pet", "owner", "store", "order", "inventory", "customer", "account",
	"invoice", "payment", "refund", "shipment", "address", "catalog",
	"product", "review", "rating", "ticket", "booking", "session",
	"profile", "avatar", "upload", "report", "export", "import",
	"tag", "category", "label", "status", "quota", "plan", "tier",
	"fluffy", "rover", "biscuit", "pickle", "tiger", "shadow", "ginger",
	"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf",
	"amber", "cobalt", "crimson", "indigo", "jade", "olive", "scarlet",
	"north", "south", "harbor", "meadow", "canyon", "summit", "valley",
}

// Dictionary holds a list of words for random selection
type Dictionary struct {
	words []string
}

// LoadDictionary loads words from a dictionary file
func LoadDictionary(path string) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Dictionary{words: fallbackWords}, nil
		}
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())

		// 3-12 chars, alpha only; these end up in urls, cookie names and xml tags
		if len(word) >= 3 && len(word) <= 12 && isAlpha(word) {
			words = append(words, strings.ToLower(word))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("no valid words found in dictionary")
	}

	return &Dictionary{words: words}, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// RandomWord returns a random word from the dictionary
func (d *Dictionary) RandomWord(rng *rand.Rand) string {
	if len(d.words) == 0 {
		return "word"
	}
	return d.words[rng.Intn(len(d.words))]
}

// Phrase joins n random words with spaces.
func (d *Dictionary) Phrase(n int, rng *rand.Rand) string {
	if n <= 0 {
		return ""
	}
	words := make([]string, n)
	for i := range words {
		words[i] = d.RandomWord(rng)
	}
	return strings.Join(words, " ")
}

// Size returns the number of words in the dictionary
func (d *Dictionary) Size() int {
	return len(d.words)
}
