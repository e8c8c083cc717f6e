package internal

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// GenerateBlockID returns a random 32-character lowercase hex block id
func GenerateBlockID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// GenerateSortingKey derives an ordering token from a zero-based cell position
func GenerateSortingKey(index int) string {
	return "a" + strconv.Itoa(index)
}

// CompareSortingKeys orders two sorting keys. Generated keys ("a" + position)
// compare by position so that "a10" follows "a9"; all other keys compare bytewise.
func CompareSortingKeys(a, b string) int {
	if ai, ok := generatedKeyPosition(a); ok {
		if bi, ok := generatedKeyPosition(b); ok {
			switch {
			case ai < bi:
				return -1
			case ai > bi:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(a, b)
}

func generatedKeyPosition(key string) (int, bool) {
	if len(key) < 2 || key[0] != 'a' {
		return 0, false
	}
	digits := key[1:]
	if len(digits) > 1 && digits[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
