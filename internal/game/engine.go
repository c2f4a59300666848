// internal/game/engine.go
//
// Word evaluator.
// Score implements the two-pass scoring used by every five-letter word game:
//
// Pass 1:
//   - Mark exact matches Correct.
//   - Count answer letters left over at the non-matching positions.
//
// Pass 2:
//   - For each remaining guess letter: if a copy of it is left, mark Present
//     and use the copy up; otherwise mark Absent.
//
// Pass 1 must finish before pass 2 starts, otherwise repeated letters are
// credited twice.

package game

// Score compares guess against answer, both lowercase a–z.
// Unequal lengths yield all-Absent; callers reject such guesses before scoring.
func Score(guess, answer string) []Mark {
	n := len(answer)
	res := make([]Mark, n)
	if len(guess) != n {
		return res
	}

	// Letter frequency for the non-hit answer positions (a–z).
	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = MarkCorrect
		} else if j := idx(answer[i]); j >= 0 {
			counts[j]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkCorrect {
			continue
		}
		if j := idx(guess[i]); j >= 0 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res
}

// idx maps a lowercase ASCII letter to 0..25, anything else to -1.
func idx(c byte) int {
	if c < 'a' || c > 'z' {
		return -1
	}
	return int(c - 'a')
}

// IsLetters reports whether s consists only of lowercase a–z.
func IsLetters(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// allCorrect returns true if every mark is MarkCorrect.
func allCorrect(m []Mark) bool {
	for _, x := range m {
		if x != MarkCorrect {
			return false
		}
	}
	return true
}
