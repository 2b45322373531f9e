package stego

import "github.com/Beastly713/pixelstash/pkg/seeded"

// baseAlphabet is shuffled per message and travels with the ciphertext.
const baseAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	caesarShift = 3
	railCount   = 3
	shuffleSwap = 1000
)

func shuffledAlphabet(rng *seeded.Random) string {
	a := []rune(baseAlphabet)
	for i := 0; i < shuffleSwap; i++ {
		x, y := rng.Intn(len(a)), rng.Intn(len(a))
		a[x], a[y] = a[y], a[x]
	}
	return string(a)
}

// caesar shifts every rune found in alphabet by shift positions; other runes
// pass through unchanged.
func caesar(text []rune, alphabet string, shift int) []rune {
	letters := []rune(alphabet)
	index := make(map[rune]int, len(letters))
	for i, r := range letters {
		index[r] = i
	}
	n := len(letters)

	out := make([]rune, len(text))
	for i, r := range text {
		pos, ok := index[r]
		if !ok {
			out[i] = r
			continue
		}
		out[i] = letters[((pos+shift)%n+n)%n]
	}
	return out
}

// railRows returns the zigzag row of every position of a text of length n.
func railRows(n, rails int) []int {
	rows := make([]int, n)
	row, step := 0, 1
	for i := range rows {
		rows[i] = row
		if rails < 2 {
			continue
		}
		if row == 0 {
			step = 1
		} else if row == rails-1 {
			step = -1
		}
		row += step
	}
	return rows
}

func railFenceEncrypt(text []rune, rails int) []rune {
	rows := railRows(len(text), rails)
	out := make([]rune, 0, len(text))
	for r := 0; r < rails; r++ {
		for i, row := range rows {
			if row == r {
				out = append(out, text[i])
			}
		}
	}
	return out
}

func railFenceDecrypt(cipher []rune, rails int) []rune {
	rows := railRows(len(cipher), rails)
	counts := make([]int, rails)
	for _, row := range rows {
		counts[row]++
	}

	start := make([]int, rails)
	for r := 1; r < rails; r++ {
		start[r] = start[r-1] + counts[r-1]
	}

	out := make([]rune, len(cipher))
	for i, row := range rows {
		out[i] = cipher[start[row]]
		start[row]++
	}
	return out
}
