package pathdata

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrUnsupportedCommand is returned for relative or unknown path commands.
	ErrUnsupportedCommand = errors.New("unsupported path command")
	// ErrMissingArgs is returned when a command runs out of operands.
	ErrMissingArgs = errors.New("missing path arguments")
)

// argCount is the operand count of one repetition of an absolute command.
func argCount(op byte) int {
	switch op {
	case 'M', 'L', 'T':
		return 2
	case 'H', 'V':
		return 1
	case 'C':
		return 6
	case 'S', 'Q':
		return 4
	case 'A':
		return 7
	case 'Z':
		return 0
	default:
		return -1
	}
}

// Parse reads an absolute-coordinate "d" attribute into commands.
// Repeated operand groups after one command letter are expanded into
// separate commands ("L 1 2 3 4" → two "L"s; extra pairs after "M" become "L").
func Parse(d string) ([]Command, error) {
	toks, err := tokenize(d)
	if err != nil {
		return nil, err
	}

	var cmds []Command
	for i := 0; i < len(toks); {
		t := toks[i]
		if !t.isOp {
			return nil, fmt.Errorf("number %q before any command: %w", t.text, ErrUnsupportedCommand)
		}
		op := t.text[0]
		n := argCount(op)
		if n < 0 {
			return nil, fmt.Errorf("command %q: %w", t.text, ErrUnsupportedCommand)
		}
		i++

		if n == 0 {
			cmds = append(cmds, Command{Op: op})
			continue
		}

		repeated := false
		for {
			if i >= len(toks) || toks[i].isOp {
				if !repeated {
					return nil, fmt.Errorf("command %c: %w", op, ErrMissingArgs)
				}
				break
			}
			args := make([]float64, n)
			for k := 0; k < n; k++ {
				if i >= len(toks) || toks[i].isOp {
					return nil, fmt.Errorf("command %c: %w", op, ErrMissingArgs)
				}
				args[k] = toks[i].num
				i++
			}
			cur := op
			if op == 'M' && repeated {
				cur = 'L'
			}
			cmds = append(cmds, Command{Op: cur, Args: args})
			repeated = true
		}
	}
	return cmds, nil
}

type token struct {
	isOp bool
	text string
	num  float64
}

func tokenize(d string) ([]token, error) {
	var toks []token
	for i := 0; i < len(d); {
		ch := d[i]
		switch {
		case ch == ' ' || ch == ',' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case isLetter(ch):
			toks = append(toks, token{isOp: true, text: string(ch)})
			i++
		default:
			j := scanNumber(d, i)
			if j == i {
				return nil, fmt.Errorf("unexpected %q at offset %d: %w", ch, i, ErrUnsupportedCommand)
			}
			v, err := strconv.ParseFloat(d[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("parse number %q: %w", d[i:j], err)
			}
			toks = append(toks, token{text: d[i:j], num: v})
			i = j
		}
	}
	return toks, nil
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z' && ch != 'e') || (ch >= 'A' && ch <= 'Z' && ch != 'E')
}

// scanNumber returns the end offset of the number starting at i.
func scanNumber(s string, i int) int {
	j := i
	if j < len(s) && (s[j] == '-' || s[j] == '+') {
		j++
	}
	digits := false
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
		digits = true
	}
	if j < len(s) && s[j] == '.' {
		j++
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			digits = true
		}
	}
	if !digits {
		return i
	}
	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '-' || s[k] == '+') {
			k++
		}
		if k < len(s) && s[k] >= '0' && s[k] <= '9' {
			for k < len(s) && s[k] >= '0' && s[k] <= '9' {
				k++
			}
			j = k
		}
	}
	return j
}
